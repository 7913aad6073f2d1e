package activity

import (
	"strings"
	"time"
)

// TableEventInput describes the common fields for table lifecycle events.
type TableEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ObjectID   string
	Channel    string
	Metadata   map[string]any
	Key        string
	Value      any
	OccurredAt time.Time
}

// BuildTableCreatedEvent constructs a normalized activity event for table
// construction.
func BuildTableCreatedEvent(input TableEventInput) Event {
	return buildTableEvent("table.created", "table", input)
}

// BuildFieldWrittenEvent constructs an activity event for a plain field
// write.
func BuildFieldWrittenEvent(input TableEventInput) Event {
	return buildTableEvent("table.field.written", "table.field", input)
}

// BuildCategoryPromotedEvent constructs an activity event for a write that
// was categorized into a subcategory.
func BuildCategoryPromotedEvent(input TableEventInput) Event {
	return buildTableEvent("table.category.promoted", "table.category", input)
}

// BuildCacheEvictedEvent constructs an activity event for a stale lookup
// cache entry healing itself.
func BuildCacheEvictedEvent(input TableEventInput) Event {
	return buildTableEvent("table.cache.evicted", "table.cache", input)
}

func buildTableEvent(verb, objectType string, input TableEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = input.Key
	}
	if input.Value != nil {
		metadata = ensureMetadata(metadata)
		metadata["value"] = input.Value
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Key)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
