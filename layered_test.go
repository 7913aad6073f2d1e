package hier

import "testing"

func TestNewLayeredStrongestLayerWins(t *testing.T) {
	table := NewLayered([]map[string]any{
		{
			"env": "prod",
			"_db": map[string]any{"host": "prod.internal"},
		},
		{
			"env":   "default",
			"debug": false,
			"_db": map[string]any{
				"host": "localhost",
				"port": 5432,
			},
		},
	})

	if got, _ := table.Get("env"); got != "prod" {
		t.Fatalf("expected strongest layer to win, got %v", got)
	}
	if got, _ := table.Get("debug"); got != false {
		t.Fatalf("expected weaker layer to fill gaps, got %v", got)
	}
	if got, _ := table.Get("host"); got != "prod.internal" {
		t.Fatalf("expected nested maps to merge per key, got %v", got)
	}
	if got, _ := table.Get("port"); got != 5432 {
		t.Fatalf("expected weaker nested key to survive the merge, got %v", got)
	}
}

func TestNewLayeredEmptyInput(t *testing.T) {
	table := NewLayered(nil)
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d fields", table.Len())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	table := New(map[string]any{
		"a": 1,
		"_b": map[string]any{
			"c": 2,
			"_d": map[string]any{"e": 3},
		},
	})

	snap := table.Snapshot()
	rebuilt := New(snap)

	for _, key := range []string{"a", "c", "e"} {
		want, _ := table.Get(key)
		got, ok := rebuilt.Get(key)
		if !ok || got != want {
			t.Fatalf("key %q: expected %v after round trip, got %v (found=%v)", key, want, got, ok)
		}
	}
	if _, ok := rebuilt.Category("_b"); !ok {
		t.Fatalf("expected category structure to survive the round trip")
	}
}

func TestSnapshotDetachesFromLiveTable(t *testing.T) {
	table := New(map[string]any{
		"tags": map[string]int{"x": 1},
		"_b":   map[string]any{"c": 2},
	}, WithPrefix("_b")) // keep tags a plain field, categorize _b

	snap := table.Snapshot()
	child, _ := table.Category("_b")
	child.Set("c", 99)
	if nested, ok := snap["_b"].(map[string]any); !ok || nested["c"] != 2 {
		t.Fatalf("expected snapshot to be detached, got %v", snap["_b"])
	}

	tags := table.Snapshot()["tags"].(map[string]int)
	tags["x"] = 100
	live, _ := table.Get("tags")
	if live.(map[string]int)["x"] != 1 {
		t.Fatalf("expected field values to be deep copied out")
	}
}

func TestSnapshotNilTable(t *testing.T) {
	var table *Table
	if snap := table.Snapshot(); snap != nil {
		t.Fatalf("expected nil snapshot for nil table, got %v", snap)
	}
}
