package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-hiertable/internal/deepmerge"
	"github.com/google/uuid"
)

// MemoryStore is a minimal in-memory Store implementation intended for tests
// and examples. It uses Ref.Identifier() as its deterministic key, assigns a
// fresh snapshot ID on every save, and detaches stored seeds from the
// caller's copies.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	seed Seed
	meta Meta
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (Seed, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false, nil
	}
	return deepmerge.Merge(record.seed), record.meta, true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, seed Seed, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	meta.SnapshotID = uuid.NewString()
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = time.Now()
	}

	s.mu.Lock()
	s.records[key] = memoryRecord{seed: deepmerge.Merge(seed), meta: meta}
	s.mu.Unlock()
	return meta, nil
}
