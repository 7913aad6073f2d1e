package hier

import (
	"context"

	"github.com/goliatone/go-hiertable/pkg/activity"
)

// WithActivityHooks attaches activity hooks notified on table lifecycle
// events: construction, field writes, category promotions, and cache
// evictions. Hooks are cloned and nil entries dropped. Hook errors never
// surface through table operations.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *tableConfig) {
		cfg.activityHooks = normalized
	}
}

// ActivityHooks returns a cloned slice of the activity hooks configured on
// the table. The returned slice can be safely mutated by the caller.
func (t *Table) ActivityHooks() activity.Hooks {
	if t == nil {
		return nil
	}
	return cloneActivityHooks(t.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

func (t *Table) emitCreated() {
	t.emit(activity.BuildTableCreatedEvent(activity.TableEventInput{}))
}

func (t *Table) emitFieldWritten(key string, value any) {
	t.emit(activity.BuildFieldWrittenEvent(activity.TableEventInput{
		Key:   key,
		Value: value,
	}))
}

func (t *Table) emitCategoryPromoted(key string) {
	t.emit(activity.BuildCategoryPromotedEvent(activity.TableEventInput{
		Key: key,
	}))
}

func (t *Table) emitCacheEvicted(key string) {
	t.emit(activity.BuildCacheEvictedEvent(activity.TableEventInput{
		Key: key,
	}))
}

func (t *Table) emit(event activity.Event) {
	if t == nil || !t.cfg.activityHooks.Enabled() {
		return
	}
	// Table operations never fail; hook errors are the hooks' problem.
	_ = t.cfg.activityHooks.Notify(context.Background(), event)
}
