package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	hier "github.com/goliatone/go-hiertable"
	"github.com/goliatone/go-hiertable/internal/deepmerge"
)

var ErrETagMismatch = errors.New("catalog: etag mismatch")

// Seed is the raw payload a table is constructed from.
type Seed = map[string]any

// Ref identifies one stored seed: a table name within a named layer.
type Ref struct {
	Table string
	Layer string
}

// Identifier returns the deterministic storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.Table == "" {
		return "", fmt.Errorf("catalog: table name is required")
	}
	if r.Layer == "" {
		return "", fmt.Errorf("catalog: layer name is required")
	}
	return fmt.Sprintf("%s/%s", r.Layer, r.Table), nil
}

// Meta is storage-owned metadata used for trace/audit and concurrency
// control.
type Meta struct {
	SnapshotID string    `json:"snapshot_id,omitempty"`
	ETag       string    `json:"etag,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Store loads/saves one seed for a single reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (seed Seed, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, seed Seed, meta Meta) (Meta, error)
}

// Mutator edits a seed in place before it is saved back.
type Mutator func(Seed) error

// Catalog assembles hierarchical tables out of stored seed layers. Options
// apply to every table it constructs.
type Catalog struct {
	Store   Store
	Options []hier.Option
}

// Resolve loads the named table's seed from each layer (ordered strongest to
// weakest), merges them, and constructs a table from the result. Layers with
// no stored seed are skipped; at least one must exist.
func (c Catalog) Resolve(ctx context.Context, table string, layers ...string) (*hier.Table, error) {
	if c.Store == nil {
		return nil, fmt.Errorf("catalog: store is required")
	}
	if table == "" {
		return nil, fmt.Errorf("catalog: table name is required")
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("catalog: at least one layer is required")
	}

	seeds := make([]Seed, 0, len(layers))
	for _, layer := range layers {
		seed, _, ok, err := c.Store.Load(ctx, Ref{Table: table, Layer: layer})
		if err != nil {
			return nil, fmt.Errorf("catalog: load %q from layer %q: %w", table, layer, err)
		}
		if !ok {
			continue
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("catalog: no seeds found for table %q", table)
	}

	return hier.New(deepmerge.Merge(seeds...), c.Options...), nil
}

// Mutate loads one seed, applies fn, then saves it back. When meta carries an
// ETag it must match the stored one. The returned table reflects the saved
// seed.
func (c Catalog) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (*hier.Table, Meta, error) {
	if c.Store == nil {
		return nil, Meta{}, fmt.Errorf("catalog: store is required")
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("catalog: mutator is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return nil, Meta{}, err
	}

	seed, loadedMeta, ok, err := c.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("catalog: load %q from layer %q: %w", ref.Table, ref.Layer, err)
	}
	if !ok {
		seed = Seed{}
		loadedMeta = Meta{}
	}
	if seed == nil {
		seed = Seed{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(seed); err != nil {
		return nil, loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	savedMeta, err := c.Store.Save(ctx, ref, seed, saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("catalog: save %q to layer %q: %w", ref.Table, ref.Layer, err)
	}

	return hier.New(seed, c.Options...), savedMeta, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	return out
}
