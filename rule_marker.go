package hier

import (
	"fmt"
	"time"
)

// ruleMarker compiles the configured rule expression into a predicate marker.
// A rule that fails to compile is logged and degrades to the default marker;
// a rule that errors or yields a non-boolean at write time categorizes
// nothing. Marker rules never fail a write.
func (cfg tableConfig) ruleMarker() Marker {
	expression := cfg.rule
	evaluator := cfg.resolveEvaluator()
	logger := cfg.ruleLoggerOrNoop()
	engine := evaluatorEngineName(evaluator)

	compiled, err := evaluator.Compile(expression)
	if err != nil {
		logger.LogRule(RuleLogEvent{
			Engine: engine,
			Expr:   expression,
			Err:    wrapEvaluationError(engine, expression, "", err),
		})
		return DefaultMarker()
	}

	fn := func(t *Table, key string) bool {
		ctx := RuleContext{Key: key}
		if t != nil {
			ctx.Fields = t.fields
		}
		start := time.Now()
		value, evalErr := compiled.Evaluate(ctx)
		duration := time.Since(start)
		evalErr = wrapEvaluationError(engine, expression, key, evalErr)
		logger.LogRule(RuleLogEvent{
			Engine:   engine,
			Expr:     expression,
			Key:      key,
			Duration: duration,
			Err:      evalErr,
		})
		if evalErr != nil {
			return false
		}
		result, ok := value.(bool)
		return ok && result
	}
	return Marker{kind: markerPredicate, predicate: fn}
}

func (cfg tableConfig) resolveEvaluator() Evaluator {
	if cfg.evaluator != nil {
		return cfg.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	return NewExprEvaluator(exprOpts...)
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*hier.exprEvaluator":
		return "expr"
	case "*hier.celEvaluator":
		return "cel"
	case "*hier.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
