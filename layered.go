package hier

import "github.com/goliatone/go-hiertable/internal/deepmerge"

// NewLayered merges seed layers ordered strongest to weakest and constructs
// a table from the result, so weaker layers fill in defaults that stronger
// layers left unset. Nested maps merge per key before categorization.
func NewLayered(layers []map[string]any, opts ...Option) *Table {
	return New(deepmerge.Merge(layers...), opts...)
}

// Snapshot exports the table tree as a detached seed map: categories become
// nested maps, field values are deep copied. Feeding the result back into
// New with the same marker reproduces an equivalent tree. Shared subtrees
// are expanded once per owner.
func (t *Table) Snapshot() map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, len(t.fields)+len(t.categories))
	for key, value := range t.fields {
		if child, ok := value.(*Table); ok {
			out[key] = child.Snapshot()
			continue
		}
		out[key] = deepmerge.Clone(value)
	}
	for name, child := range t.categories {
		out[name] = child.Snapshot()
	}
	return out
}
