package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"move":  map[string]any{"type": "string"},
			"depth": map[string]any{"type": "integer"},
			"side":  map[string]any{"type": "string", "enum": []any{"w", "b", "-"}},
			"evals": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"move", "depth"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["move"].Type != "STRING" {
		t.Fatalf("expected STRING for move, got %s", schema.Properties["move"].Type)
	}
	if schema.Properties["depth"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for depth, got %s", schema.Properties["depth"].Type)
	}
	if len(schema.Properties["side"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["side"].Enum))
	}
	if schema.Properties["evals"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for evals, got %s", schema.Properties["evals"].Type)
	}
	if schema.Properties["evals"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for evals items, got %s", schema.Properties["evals"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
