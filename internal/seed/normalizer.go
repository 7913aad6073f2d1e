// Package seed converts arbitrary Go values into the string-keyed seed maps
// a table is constructed from.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context carries identifiers tied to a seed payload, used in error messages
// and hooks.
type Context struct {
	Name string
}

// PreHook lets callers mutate or replace the value before normalization.
type PreHook func(Context, any) (any, error)

// PostHook lets callers adjust or validate the seed map after normalization.
type PostHook func(Context, map[string]any) (map[string]any, error)

// Option configures a Normalizer instance.
type Option func(*Normalizer)

// Normalizer converts values into detached seed maps via a JSON round trip.
type Normalizer struct {
	preHooks     []PreHook
	postHooks    []PostHook
	configureDec []func(*json.Decoder)
}

// WithPreHook applies hook prior to normalization.
func WithPreHook(hook PreHook) Option {
	return func(n *Normalizer) {
		n.preHooks = append(n.preHooks, hook)
	}
}

// WithPostHook applies hook after normalization completes.
func WithPostHook(hook PostHook) Option {
	return func(n *Normalizer) {
		n.postHooks = append(n.postHooks, hook)
	}
}

// WithUseNumber enables json.Decoder.UseNumber during normalization, keeping
// numeric fields as json.Number instead of float64.
func WithUseNumber() Option {
	return func(n *Normalizer) {
		n.configureDec = append(n.configureDec, func(dec *json.Decoder) {
			dec.UseNumber()
		})
	}
}

// WithDecoderConfig allows callers to configure the json.Decoder directly.
func WithDecoderConfig(configure func(*json.Decoder)) Option {
	return func(n *Normalizer) {
		if configure != nil {
			n.configureDec = append(n.configureDec, configure)
		}
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Normalize converts value into a seed map applying configured hooks. The
// result shares no references with the input.
func (n *Normalizer) Normalize(ctx Context, value any) (map[string]any, error) {
	if value == nil {
		return nil, fmt.Errorf("seed: value is nil for %q", ctx.Name)
	}

	current := value
	for _, hook := range n.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("seed: pre-hook for %q failed: %w", ctx.Name, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("seed: marshal value for %q: %w", ctx.Name, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range n.configureDec {
		if configure != nil {
			configure(decoder)
		}
	}
	var result map[string]any
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("seed: decode %q: %w", ctx.Name, err)
	}

	for _, hook := range n.postHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, result)
		if err != nil {
			return nil, fmt.Errorf("seed: post-hook for %q failed: %w", ctx.Name, err)
		}
		if next != nil {
			result = next
		}
	}

	return result, nil
}
