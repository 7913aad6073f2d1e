package hier

import "github.com/goliatone/go-hiertable/internal/seed"

// NewFromValue builds a table from any JSON-marshalable value (typically a
// struct) by normalizing it into a seed map first. Unlike New it can fail:
// values that do not marshal to a JSON object are rejected.
func NewFromValue(value any, opts ...Option) (*Table, error) {
	normalized, err := seed.NewNormalizer().Normalize(seed.Context{}, value)
	if err != nil {
		return nil, err
	}
	return New(normalized, opts...), nil
}
