package hier

// ProgramCache stores compiled rule programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a compiled-rule cache used by rule markers.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *tableConfig) {
		cfg.programCache = cache
	}
}
