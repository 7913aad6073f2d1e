package hier

import "time"

// LookupLogEvent describes one resolver traversal for logging. Direct field
// hits are not logged; only reads that reached the category search.
type LookupLogEvent struct {
	Field    string
	Path     []string
	CacheHit bool
	Evicted  bool
	Found    bool
	Duration time.Duration
}

// LookupLogger records resolver events. Logging has no effect on lookup
// results; it is a purely observational sink.
type LookupLogger interface {
	LogLookup(LookupLogEvent)
}

// LookupLoggerFunc adapts a function to LookupLogger.
type LookupLoggerFunc func(LookupLogEvent)

// LogLookup implements LookupLogger.
func (f LookupLoggerFunc) LogLookup(event LookupLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLookupLogger struct{}

func (noopLookupLogger) LogLookup(LookupLogEvent) {}

// WithLookupLogger attaches a resolver logger to the table.
func WithLookupLogger(logger LookupLogger) Option {
	return func(cfg *tableConfig) {
		if logger == nil {
			cfg.lookupLogger = noopLookupLogger{}
			return
		}
		cfg.lookupLogger = logger
	}
}

// RuleLogEvent describes a marker rule evaluation attempt.
type RuleLogEvent struct {
	Engine   string
	Expr     string
	Key      string
	Duration time.Duration
	Err      error
}

// RuleLogger records rule marker events.
type RuleLogger interface {
	LogRule(RuleLogEvent)
}

// RuleLoggerFunc adapts a function to RuleLogger.
type RuleLoggerFunc func(RuleLogEvent)

// LogRule implements RuleLogger.
func (f RuleLoggerFunc) LogRule(event RuleLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopRuleLogger struct{}

func (noopRuleLogger) LogRule(RuleLogEvent) {}

// WithRuleLogger attaches a rule marker logger to the table.
func WithRuleLogger(logger RuleLogger) Option {
	return func(cfg *tableConfig) {
		if logger == nil {
			cfg.ruleLogger = noopRuleLogger{}
			return
		}
		cfg.ruleLogger = logger
	}
}
