package hier

import (
	"sort"
	"time"
)

// Table is one node of a hierarchical attribute table. Plain values live in
// fields; mapping values matching the marker are promoted into child tables
// reachable through categories. Reads that miss the direct fields search the
// category tree and remember the first hop in a per-node cache.
//
// The zero value is usable and behaves as an uncached table with an empty
// prefix marker; New applies options, enables caching, and seeds entries.
//
// A Table is not safe for concurrent use: reads mutate the cache.
type Table struct {
	fields       map[string]any
	marker       Marker
	cacheEnabled bool
	cache        map[string]string
	categories   map[string]*Table

	cfg tableConfig
}

// New constructs a table and writes every seed entry through Set, so nested
// maps in the seed are themselves subject to categorization. Malformed
// configuration degrades to defaults; New never fails.
func New(seed map[string]any, opts ...Option) *Table {
	cfg := applyOptions(opts)
	t := newTable(cfg)
	t.emitCreated()
	for key, value := range seed {
		t.Set(key, value)
	}
	return t
}

func newTable(cfg tableConfig) *Table {
	marker := cfg.markerOrDefault()
	if cfg.rule != "" && !cfg.markerSet {
		marker = cfg.ruleMarker()
	}
	t := &Table{
		fields:       map[string]any{},
		marker:       marker,
		cacheEnabled: cfg.cacheOrDefault(),
		cfg:          cfg,
	}
	if t.cacheEnabled {
		t.cache = map[string]string{}
	}
	return t
}

// newChild constructs a subcategory node inheriting the parent's marker and
// cache policy, then seeds it through the regular write path.
func (t *Table) newChild(seed map[string]any) *Table {
	cfg := t.cfg
	cfg.marker = t.marker
	cfg.markerSet = true
	cfg.rule = ""
	cfg.cacheEnabled = t.cacheEnabled
	cfg.cacheSet = true
	child := newTable(cfg)
	for key, value := range seed {
		child.Set(key, value)
	}
	return child
}

// Set stores value under key, promoting it into a subcategory when the
// marker classifies it as one. Existing entries are silently overwritten.
func (t *Table) Set(key string, value any) {
	if t == nil {
		return
	}
	if t.marker.categorizes(t, key, value) {
		t.setCategory(key, value)
		return
	}
	if t.categories != nil {
		// An assignment routes to exactly one side of the namespace.
		delete(t.categories, key)
	}
	if t.fields == nil {
		// Zero-value tables skip New; allocate on first write.
		t.fields = map[string]any{}
	}
	t.fields[key] = value
	t.emitFieldWritten(key, value)
}

func (t *Table) setCategory(key string, value any) {
	if t.categories == nil {
		t.categories = map[string]*Table{}
	}
	delete(t.fields, key)
	child, ok := value.(*Table)
	if !ok {
		// Promotion path: a raw map becomes a child table. Already
		// constructed tables are stored by reference so one subtree may be
		// shared by several parents.
		seed, _ := value.(map[string]any)
		child = t.newChild(seed)
	}
	t.categories[key] = child
	t.emitCategoryPromoted(key)
}

// Get returns the value stored under key. Direct fields shadow the category
// tree; on a direct miss the resolver searches categories and refreshes the
// cache with the first hop of the winning path. A missing key is not an
// error: Get reports found=false.
func (t *Table) Get(key string) (any, bool) {
	value, trace := t.GetTraced(key)
	return value, trace.Found
}

// GetTraced behaves like Get and additionally reports the traversal taken to
// resolve key.
func (t *Table) GetTraced(key string) (any, LookupTrace) {
	trace := LookupTrace{Field: key}
	if t == nil {
		return nil, trace
	}
	if value, ok := t.fields[key]; ok {
		trace.Found = true
		return value, trace
	}
	if t.categories == nil {
		return nil, trace
	}

	start := time.Now()
	res := lookup(t.categories, key, t.cache, nil)
	trace.Found = res.found
	trace.Path = res.path
	trace.CacheHit = res.cacheHit
	trace.Evicted = res.evicted

	if res.found && t.cache != nil && len(res.path) > 0 {
		// The cache records the name of the immediate child, not the deep
		// node where the value lives. Reuse resolves the name through the
		// live categories map with a single direct-field probe.
		t.cache[key] = res.path[0]
	}
	t.cfg.lookupLoggerOrNoop().LogLookup(LookupLogEvent{
		Field:    key,
		Path:     res.path,
		CacheHit: res.cacheHit,
		Evicted:  res.evicted,
		Found:    res.found,
		Duration: time.Since(start),
	})
	if res.evicted {
		t.emitCacheEvicted(key)
	}
	return res.value, trace
}

// Has reports whether key resolves either directly or through categories.
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Len returns the number of direct fields on this node.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fields)
}

// Keys returns the direct field names sorted alphabetically.
func (t *Table) Keys() []string {
	if t == nil || len(t.fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(t.fields))
	for key := range t.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Category returns the direct subcategory stored under name.
func (t *Table) Category(name string) (*Table, bool) {
	if t == nil || t.categories == nil {
		return nil, false
	}
	child, ok := t.categories[name]
	return child, ok
}

// CategoryNames returns the direct subcategory names sorted alphabetically.
func (t *Table) CategoryNames() []string {
	if t == nil || len(t.categories) == 0 {
		return nil
	}
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marker returns the categorization rule fixed at construction.
func (t *Table) Marker() Marker {
	if t == nil {
		return DefaultMarker()
	}
	return t.marker
}

// CacheEnabled reports whether this node maintains a lookup cache.
func (t *Table) CacheEnabled() bool {
	return t != nil && t.cacheEnabled
}
