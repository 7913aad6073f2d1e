package hier

import (
	"fmt"
	"strings"
)

// FieldDescriptor describes one dot-joined path in the table tree and the
// inferred type stored there. Category entries are marked and expanded
// recursively.
type FieldDescriptor struct {
	Path     string
	Type     string
	Category bool
}

// Describe flattens the table tree into field descriptors, direct fields
// first, then categories, each group sorted by name. It is a descriptor
// document only; nothing is validated.
func (t *Table) Describe() []FieldDescriptor {
	return deriveDescriptors(t, "")
}

func deriveDescriptors(t *Table, prefix string) []FieldDescriptor {
	if t == nil {
		return nil
	}
	var fields []FieldDescriptor
	for _, key := range t.Keys() {
		fields = append(fields, FieldDescriptor{
			Path: joinPath(prefix, key),
			Type: typeName(t.fields[key]),
		})
	}
	for _, name := range t.CategoryNames() {
		next := joinPath(prefix, name)
		fields = append(fields, FieldDescriptor{
			Path:     next,
			Type:     "category",
			Category: true,
		})
		fields = append(fields, deriveDescriptors(t.categories[name], next)...)
	}
	return fields
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
