package hier

import "strings"

// DefaultPrefix is the category marker used when no explicit marker is
// configured: keys starting with "_" whose value is a mapping become
// subcategories.
const DefaultPrefix = "_"

// Predicate decides whether a key being written to t should become a
// category. It is only consulted for mapping-typed values.
type Predicate func(t *Table, key string) bool

type markerKind int

const (
	markerPrefix markerKind = iota
	markerPredicate
)

// Marker is the categorization rule attached to a table node. It is a tagged
// variant: either a literal key prefix or a predicate function. The zero
// Marker is PrefixMarker(""), which categorizes every mapping value; use
// DefaultMarker for the package default.
type Marker struct {
	kind      markerKind
	prefix    string
	predicate Predicate
}

// PrefixMarker categorizes mapping values whose key starts with prefix. An
// empty prefix categorizes every mapping value.
func PrefixMarker(prefix string) Marker {
	return Marker{kind: markerPrefix, prefix: prefix}
}

// PredicateMarker categorizes mapping values for which fn returns true. A nil
// fn normalizes to the default marker.
func PredicateMarker(fn Predicate) Marker {
	if fn == nil {
		return DefaultMarker()
	}
	return Marker{kind: markerPredicate, predicate: fn}
}

// DefaultMarker returns the package default prefix marker.
func DefaultMarker() Marker {
	return Marker{kind: markerPrefix, prefix: DefaultPrefix}
}

// normalize degrades malformed markers to the default instead of failing.
func (m Marker) normalize() Marker {
	if m.kind == markerPredicate && m.predicate == nil {
		return DefaultMarker()
	}
	return m
}

// categorizes reports whether an assignment of value under key on t routes to
// the categories collection rather than plain fields. Non-mapping values are
// never categorized regardless of marker.
func (m Marker) categorizes(t *Table, key string, value any) bool {
	if !isContainer(value) {
		return false
	}
	switch m.kind {
	case markerPredicate:
		if m.predicate == nil {
			return false
		}
		return m.predicate(t, key)
	default:
		return m.prefix == "" || strings.HasPrefix(key, m.prefix)
	}
}

// isContainer is the capability check separating category candidates from
// plain values: only tables and string-keyed maps qualify.
func isContainer(value any) bool {
	switch value.(type) {
	case *Table, map[string]any:
		return true
	}
	return false
}
