package hier

import (
	"encoding/json"
)

// LookupTrace captures how a single read resolved: the category path walked,
// whether the cache shortcut answered it, and whether a stale cache entry was
// evicted along the way. A direct field hit has an empty path.
type LookupTrace struct {
	Field    string   `json:"field"`
	Path     []string `json:"path,omitempty"`
	CacheHit bool     `json:"cache_hit,omitempty"`
	Evicted  bool     `json:"evicted,omitempty"`
	Found    bool     `json:"found"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t LookupTrace) ToJSON() ([]byte, error) {
	type alias LookupTrace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (LookupTrace, error) {
	type alias LookupTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return LookupTrace{}, err
	}
	return LookupTrace(trace), nil
}
