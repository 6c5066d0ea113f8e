package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func readinessSchema() *Schema {
	return &Schema{
		Name: "test-readiness",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"readiness": map[string]any{"type": "string", "enum": []string{"Green", "Yellow", "Red"}},
				"points": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"maxItems": 3,
				},
				"openSquawks": map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []string{"readiness", "points"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"readiness":"Green","points":["All systems nominal"]}`, false},
		{"optional field", `{"readiness":"Yellow","points":[],"openSquawks":2}`, false},
		{"missing required", `{"readiness":"Red"}`, true},
		{"bad enum", `{"readiness":"Amber","points":[]}`, true},
		{"too many points", `{"readiness":"Red","points":["a","b","c","d"]}`, true},
		{"wrong item type", `{"readiness":"Red","points":[1]}`, true},
		{"negative count", `{"readiness":"Red","points":[],"openSquawks":-1}`, true},
		{"malformed", `{readiness}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(readinessSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("content not carried: %q", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestChecked(t *testing.T) {
	raw := json.RawMessage("plain text")
	got, err := checked(Request{}, raw)
	if err != nil || string(got) != "plain text" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := checked(Request{Schema: readinessSchema()}, raw); err == nil {
		t.Fatal("expected schema failure")
	}
}
