package hier

import (
	"strings"
	"testing"
)

func TestFunctionRegistryRegisterAndCall(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("double", func(args ...any) (any, error) {
		n, _ := args[0].(int)
		return n * 2, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := registry.Call("double", 21)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}

	// Lookup is case-insensitive.
	if _, err := registry.Call("DOUBLE", 1); err != nil {
		t.Fatalf("expected case-insensitive call, got %v", err)
	}
}

func TestFunctionRegistryRejectsBadInput(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if err := registry.Register("fn", nil); err == nil {
		t.Fatalf("expected nil function to be rejected")
	}
	if err := registry.Register("fn", func(...any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("FN", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
}

func TestFunctionRegistryCallUnknown(t *testing.T) {
	registry := NewFunctionRegistry()
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected error for unknown function")
	} else if !strings.HasPrefix(err.Error(), "hier:") {
		t.Fatalf("expected hier prefix, got %v", err)
	}
}

func TestFunctionRegistryCloneIsDetached(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("one", func(...any) (any, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}

	clone := registry.Clone()
	if err := clone.Register("two", func(...any) (any, error) { return 2, nil }); err != nil {
		t.Fatalf("register on clone: %v", err)
	}

	if _, err := registry.Call("two"); err == nil {
		t.Fatalf("expected clone registration not to leak into the original")
	}
	names := clone.Names()
	if len(names) != 2 || names[0] != "one" || names[1] != "two" {
		t.Fatalf("expected sorted names [one two], got %v", names)
	}
}

func TestFunctionRegistryNilSafety(t *testing.T) {
	var registry *FunctionRegistry
	if registry.Clone() != nil {
		t.Fatalf("nil registry clone must be nil")
	}
	if registry.Names() != nil {
		t.Fatalf("nil registry names must be nil")
	}
	if _, err := registry.Call("fn"); err == nil {
		t.Fatalf("expected error calling on nil registry")
	}
}

func TestWithCustomFunctionOption(t *testing.T) {
	table := New(nil,
		WithRule(`tagged(key)`),
		WithCustomFunction("tagged", func(args ...any) (any, error) {
			name, _ := args[0].(string)
			return strings.HasPrefix(name, "tag:"), nil
		}),
	)

	table.Set("tag:net", map[string]any{"mtu": 1500})
	table.Set("net", map[string]any{"mtu": 1500})

	if _, ok := table.Category("tag:net"); !ok {
		t.Fatalf("expected custom function rule to categorize tag:net")
	}
	if _, ok := table.Category("net"); ok {
		t.Fatalf("expected custom function rule to reject net")
	}
}
