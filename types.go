package hier

import (
	"time"

	"github.com/goliatone/go-hiertable/pkg/activity"
)

// RuleContext carries the inputs available to a marker rule expression when
// deciding whether a written key becomes a category.
type RuleContext struct {
	Key      string
	Fields   map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Fields == nil {
		ctx.Fields = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// Evaluator executes marker rule expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a table at construction time.
type Option func(*tableConfig)

type tableConfig struct {
	marker        Marker
	markerSet     bool
	rule          string
	cacheEnabled  bool
	cacheSet      bool
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	lookupLogger  LookupLogger
	ruleLogger    RuleLogger
	activityHooks activity.Hooks
}

func applyOptions(opts []Option) tableConfig {
	cfg := tableConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMarker sets the categorization marker. Malformed markers degrade to the
// package default rather than failing construction.
func WithMarker(marker Marker) Option {
	return func(cfg *tableConfig) {
		cfg.marker = marker.normalize()
		cfg.markerSet = true
	}
}

// WithPrefix is shorthand for WithMarker(PrefixMarker(prefix)).
func WithPrefix(prefix string) Option {
	return func(cfg *tableConfig) {
		cfg.marker = PrefixMarker(prefix)
		cfg.markerSet = true
	}
}

// WithPredicate is shorthand for WithMarker(PredicateMarker(fn)).
func WithPredicate(fn Predicate) Option {
	return func(cfg *tableConfig) {
		cfg.marker = PredicateMarker(fn)
		cfg.markerSet = true
	}
}

// WithRule configures an expression-backed marker predicate. The expression
// is compiled with the configured evaluator (expr by default) and evaluated
// with the written key and the node's direct fields in scope. A rule that
// fails to compile degrades to the default marker; a rule that errors or
// returns a non-boolean at write time categorizes nothing.
func WithRule(expression string) Option {
	return func(cfg *tableConfig) {
		cfg.rule = expression
	}
}

// WithCache toggles the per-node lookup cache. Caching is enabled by default;
// disabling it changes lookup cost, never lookup results.
func WithCache(enabled bool) Option {
	return func(cfg *tableConfig) {
		cfg.cacheEnabled = enabled
		cfg.cacheSet = true
	}
}

// WithEvaluator configures the evaluator used to compile and run rule
// markers.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *tableConfig) {
		cfg.evaluator = e
	}
}

func (cfg tableConfig) markerOrDefault() Marker {
	if !cfg.markerSet {
		return DefaultMarker()
	}
	return cfg.marker.normalize()
}

func (cfg tableConfig) cacheOrDefault() bool {
	if !cfg.cacheSet {
		return true
	}
	return cfg.cacheEnabled
}

func (cfg tableConfig) lookupLoggerOrNoop() LookupLogger {
	if cfg.lookupLogger != nil {
		return cfg.lookupLogger
	}
	return noopLookupLogger{}
}

func (cfg tableConfig) ruleLoggerOrNoop() RuleLogger {
	if cfg.ruleLogger != nil {
		return cfg.ruleLogger
	}
	return noopRuleLogger{}
}
