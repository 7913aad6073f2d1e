package hier

import "testing"

func TestNewFromValueNormalizesStructs(t *testing.T) {
	type dbConfig struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	type appConfig struct {
		Name string   `json:"name"`
		DB   dbConfig `json:"_db"`
	}

	table, err := NewFromValue(appConfig{
		Name: "svc",
		DB:   dbConfig{Host: "localhost", Port: 5432},
	})
	if err != nil {
		t.Fatalf("NewFromValue: %v", err)
	}

	if got, _ := table.Get("name"); got != "svc" {
		t.Fatalf("expected name=svc, got %v", got)
	}
	if _, ok := table.Category("_db"); !ok {
		t.Fatalf("expected tagged struct field to be promoted")
	}
	if got, _ := table.Get("host"); got != "localhost" {
		t.Fatalf("expected host via _db, got %v", got)
	}
	// JSON normalization turns ints into float64.
	if got, _ := table.Get("port"); got != float64(5432) {
		t.Fatalf("expected port=5432 as float64, got %v (%T)", got, got)
	}
}

func TestNewFromValueRejectsNonObjects(t *testing.T) {
	if _, err := NewFromValue(42); err == nil {
		t.Fatalf("expected scalar input to be rejected")
	}
	if _, err := NewFromValue([]string{"a"}); err == nil {
		t.Fatalf("expected slice input to be rejected")
	}
}

func TestNewFromValueHonorsOptions(t *testing.T) {
	table, err := NewFromValue(map[string]any{
		"cfg_net": map[string]any{"mtu": 1500},
	}, WithPrefix("cfg_"))
	if err != nil {
		t.Fatalf("NewFromValue: %v", err)
	}
	if _, ok := table.Category("cfg_net"); !ok {
		t.Fatalf("expected custom prefix to apply to normalized seed")
	}
}
