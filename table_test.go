package hier

import (
	"strings"
	"testing"
)

func TestNewSeedsCategorizeRecursively(t *testing.T) {
	table := New(map[string]any{
		"a": 1,
		"_b": map[string]any{
			"c": 2,
			"_d": map[string]any{
				"e": 3,
			},
		},
	})

	if got, ok := table.Get("a"); !ok || got != 1 {
		t.Fatalf("expected direct field a=1, got %v (found=%v)", got, ok)
	}
	child, ok := table.Category("_b")
	if !ok {
		t.Fatalf("expected _b to be promoted into a category")
	}
	if got, ok := child.Get("c"); !ok || got != 2 {
		t.Fatalf("expected nested field c=2, got %v (found=%v)", got, ok)
	}
	if _, ok := child.Category("_d"); !ok {
		t.Fatalf("expected nested seed map to be promoted recursively")
	}
}

func TestScalarSeedRoundTrip(t *testing.T) {
	seed := map[string]any{
		"name":    "widget",
		"count":   42,
		"ratio":   0.5,
		"enabled": true,
	}
	table := New(seed)

	if table.Len() != len(seed) {
		t.Fatalf("expected %d direct fields, got %d", len(seed), table.Len())
	}
	for key, want := range seed {
		got, ok := table.Get(key)
		if !ok {
			t.Fatalf("expected seed key %q to resolve", key)
		}
		if got != want {
			t.Fatalf("seed key %q expected %v, got %v", key, want, got)
		}
	}
	if names := table.CategoryNames(); names != nil {
		t.Fatalf("scalar seed must not create categories, got %v", names)
	}
}

func TestDirectFieldsShadowCategories(t *testing.T) {
	table := New(map[string]any{
		"_settings": map[string]any{
			"timeout": 30,
		},
	})
	table.Set("timeout", 5)

	if got, ok := table.Get("timeout"); !ok || got != 5 {
		t.Fatalf("expected direct field to shadow category resolution, got %v (found=%v)", got, ok)
	}
}

func TestSetOverwritesSilently(t *testing.T) {
	table := New(nil)
	table.Set("k", 1)
	table.Set("k", 2)

	if got, _ := table.Get("k"); got != 2 {
		t.Fatalf("expected overwrite to win, got %v", got)
	}
}

func TestAssignmentRoutesToExactlyOneSide(t *testing.T) {
	table := New(nil)
	table.Set("_slot", "plain")
	if _, ok := table.Category("_slot"); ok {
		t.Fatalf("string value must not be categorized")
	}

	table.Set("_slot", map[string]any{"x": 1})
	if _, ok := table.Category("_slot"); !ok {
		t.Fatalf("expected mapping re-assignment to promote _slot")
	}
	if got, ok := table.Get("_slot"); !ok {
		t.Fatalf("expected _slot to resolve as its category")
	} else if _, isTable := got.(*Table); !isTable {
		t.Fatalf("expected stale plain field to be dropped, got %T", got)
	}

	table.Set("_slot", "plain again")
	if _, ok := table.Category("_slot"); ok {
		t.Fatalf("expected category entry dropped after plain re-assignment")
	}
	if got, _ := table.Get("_slot"); got != "plain again" {
		t.Fatalf("expected plain value back, got %v", got)
	}
}

func TestAlreadyConstructedTablesAreStoredByReference(t *testing.T) {
	shared := New(map[string]any{"limit": 10})
	left := New(nil)
	right := New(nil)
	left.Set("_shared", shared)
	right.Set("_shared", shared)

	shared.Set("limit", 99)

	if got, _ := left.Get("limit"); got != 99 {
		t.Fatalf("expected mutation visible through left parent, got %v", got)
	}
	if got, _ := right.Get("limit"); got != 99 {
		t.Fatalf("expected mutation visible through right parent, got %v", got)
	}
}

func TestPromotedMapsAreDetachedFromSeed(t *testing.T) {
	raw := map[string]any{"c": 2}
	table := New(map[string]any{"_b": raw})

	raw["c"] = 100
	if got, _ := table.Get("c"); got != 2 {
		t.Fatalf("expected promoted category to own its entries, got %v", got)
	}
}

func TestChildInheritsMarkerAndCachePolicy(t *testing.T) {
	table := New(nil, WithPrefix("cfg_"), WithCache(false))
	table.Set("cfg_child", map[string]any{
		"cfg_grand": map[string]any{"deep": 1},
	})

	child, ok := table.Category("cfg_child")
	if !ok {
		t.Fatalf("expected cfg_child category")
	}
	if child.CacheEnabled() {
		t.Fatalf("expected child to inherit disabled cache")
	}
	if _, ok := child.Category("cfg_grand"); !ok {
		t.Fatalf("expected child to inherit the cfg_ prefix marker")
	}
}

func TestCacheDisabledNeverChangesResults(t *testing.T) {
	seed := map[string]any{
		"top": "t",
		"_a": map[string]any{
			"x": 1,
			"_deep": map[string]any{
				"y": 2,
			},
		},
		"_b": map[string]any{
			"z": 3,
		},
	}
	cached := New(seed)
	plain := New(seed, WithCache(false))

	keys := []string{"top", "x", "y", "z", "x", "y", "missing", "x"}
	for _, key := range keys {
		cachedValue, cachedOK := cached.Get(key)
		plainValue, plainOK := plain.Get(key)
		if cachedOK != plainOK || cachedValue != plainValue {
			t.Fatalf("key %q: cache-enabled (%v,%v) diverged from cache-disabled (%v,%v)",
				key, cachedValue, cachedOK, plainValue, plainOK)
		}
	}
}

func TestCacheSelfHealsAfterCategoryReplacement(t *testing.T) {
	table := New(map[string]any{
		"_a": map[string]any{"v": "old"},
	})

	if got, _ := table.Get("v"); got != "old" {
		t.Fatalf("expected first read to resolve old value, got %v", got)
	}
	// The cache now points v at the original _a child; replace it wholesale.
	table.Set("_a", map[string]any{"other": true})
	table.Set("_b", map[string]any{"v": "new"})

	got, trace := table.GetTraced("v")
	if got != "new" {
		t.Fatalf("expected self-healing cache to find current value, got %v", got)
	}
	if trace.CacheHit {
		t.Fatalf("stale entry must not count as a cache hit")
	}
	if !trace.Evicted {
		t.Fatalf("expected stale cache entry to be evicted")
	}
}

func TestStaleHintNeverShortCircuitsSiblingScan(t *testing.T) {
	seed := map[string]any{
		"_a": map[string]any{
			"_x": map[string]any{"k": "deep"},
		},
	}
	cached := New(seed)
	plain := New(seed, WithCache(false))

	// Populate the cache through a deep resolution, then add a sibling that
	// can answer at depth one. The hinted child can still resolve k deeper
	// down, but the probe must not search past its direct fields.
	if got, _ := cached.Get("k"); got != "deep" {
		t.Fatalf("expected deep value before mutation, got %v", got)
	}
	cached.Set("_b", map[string]any{"k": "shallow"})
	plain.Set("_b", map[string]any{"k": "shallow"})

	plainValue, _ := plain.Get("k")
	got, trace := cached.GetTraced("k")
	if got != plainValue {
		t.Fatalf("cache changed the result: cached=%v plain=%v", got, plainValue)
	}
	if got != "shallow" {
		t.Fatalf("expected the one-level scan to win, got %v", got)
	}
	if trace.CacheHit {
		t.Fatalf("a hint that misses the direct fields must not count as a hit")
	}
	if !trace.Evicted {
		t.Fatalf("expected the stale hint to be evicted")
	}
}

func TestExampleScenario(t *testing.T) {
	table := New(map[string]any{
		"a":  1,
		"_b": map[string]any{"c": 2},
	})

	if got, ok := table.Get("a"); !ok || got != 1 {
		t.Fatalf("expected a=1 directly, got %v (found=%v)", got, ok)
	}

	got, trace := table.GetTraced("c")
	if got != 2 {
		t.Fatalf("expected c=2 via category resolution, got %v", got)
	}
	if len(trace.Path) != 1 || trace.Path[0] != "_b" {
		t.Fatalf("expected one-hop path through _b, got %v", trace.Path)
	}

	got, trace = table.GetTraced("c")
	if got != 2 || !trace.CacheHit {
		t.Fatalf("expected second read to take the cache shortcut, got %v (cacheHit=%v)", got, trace.CacheHit)
	}

	if _, ok := table.Get("z"); ok {
		t.Fatalf("expected z to be absent")
	}
	if len(table.cache) != 1 {
		t.Fatalf("expected absent read to leave the cache untouched, got %d entries", len(table.cache))
	}
}

func TestEmptyPrefixCategorizesEveryMapping(t *testing.T) {
	table := New(map[string]any{
		"plain":  1,
		"nested": map[string]any{"x": 2},
	}, WithPrefix(""))

	if _, ok := table.Category("nested"); !ok {
		t.Fatalf("empty prefix must categorize every mapping value")
	}
	if _, ok := table.Category("plain"); ok {
		t.Fatalf("scalar values must never be categorized")
	}
}

func TestPredicateMarkerRouting(t *testing.T) {
	table := New(nil, WithPredicate(func(_ *Table, key string) bool {
		return strings.HasSuffix(key, "_cfg")
	}))

	table.Set("db_cfg", map[string]any{"host": "localhost"})
	table.Set("name", map[string]any{"ignored": true})

	if _, ok := table.Category("db_cfg"); !ok {
		t.Fatalf("expected predicate to categorize db_cfg")
	}
	if _, ok := table.Category("name"); ok {
		t.Fatalf("expected predicate to reject name")
	}
	if got, _ := table.Get("host"); got != "localhost" {
		t.Fatalf("expected host to resolve through db_cfg, got %v", got)
	}
}

func TestMalformedMarkerDegradesToDefault(t *testing.T) {
	table := New(map[string]any{
		"_cat": map[string]any{"inner": 1},
	}, WithMarker(PredicateMarker(nil)))

	if _, ok := table.Category("_cat"); !ok {
		t.Fatalf("expected nil predicate to degrade to the default prefix marker")
	}
}

func TestNilTableOperationsAreSafe(t *testing.T) {
	var table *Table
	table.Set("k", 1)
	if _, ok := table.Get("k"); ok {
		t.Fatalf("nil table must resolve nothing")
	}
	if table.Len() != 0 || table.Keys() != nil || table.CategoryNames() != nil {
		t.Fatalf("nil table accessors must return zero values")
	}
	if table.Has("k") {
		t.Fatalf("nil table must not report keys")
	}
}

func TestZeroValueTableIsUsable(t *testing.T) {
	var table Table
	table.Set("k", 1)
	if got, ok := table.Get("k"); !ok || got != 1 {
		t.Fatalf("expected zero-value table to accept writes, got %v (found=%v)", got, ok)
	}

	// The zero marker is an empty prefix, so every mapping categorizes.
	table.Set("nested", map[string]any{"x": 2})
	if _, ok := table.Category("nested"); !ok {
		t.Fatalf("expected zero-value table to promote mappings")
	}
	if got, _ := table.Get("x"); got != 2 {
		t.Fatalf("expected nested resolution on zero-value table, got %v", got)
	}
}

func TestKeysAndCategoryNamesAreSorted(t *testing.T) {
	table := New(map[string]any{
		"zeta":   1,
		"alpha":  2,
		"_two":   map[string]any{},
		"_one":   map[string]any{},
		"middle": 3,
	})

	wantKeys := []string{"alpha", "middle", "zeta"}
	gotKeys := table.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("expected keys %v, got %v", wantKeys, gotKeys)
	}
	for i, want := range wantKeys {
		if gotKeys[i] != want {
			t.Fatalf("expected keys %v, got %v", wantKeys, gotKeys)
		}
	}

	wantNames := []string{"_one", "_two"}
	gotNames := table.CategoryNames()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("expected categories %v, got %v", wantNames, gotNames)
	}
	for i, want := range wantNames {
		if gotNames[i] != want {
			t.Fatalf("expected categories %v, got %v", wantNames, gotNames)
		}
	}
}
