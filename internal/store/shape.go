package store

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/teniciavanaalten/simlog/internal/records"
)

// collectionShape is the JSON Schema a stored collection must satisfy
// before it is decoded. Anything that fails is treated as corrupt.
type collectionShape struct {
	name     string
	compiled *jsonschema.Schema
}

func (s *collectionShape) validate(doc any) error {
	return s.compiled.Validate(doc)
}

// mustShape compiles an array-of-items schema. Definitions are static, so a
// compile failure is a programming error.
func mustShape(name string, item map[string]any) *collectionShape {
	def := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
		"items":   item,
	}

	// The compiler expects a parsed JSON value, so round-trip the map.
	b, err := json.Marshal(def)
	if err != nil {
		panic(fmt.Sprintf("store: marshal %s shape: %v", name, err))
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		panic(fmt.Sprintf("store: parse %s shape: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		panic(fmt.Sprintf("store: add %s shape: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("store: compile %s shape: %v", name, err))
	}
	return &collectionShape{name: name, compiled: compiled}
}

func labels[T fmt.Stringer](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

var (
	str    = map[string]any{"type": "string"}
	nonNeg = map[string]any{"type": "number", "minimum": 0}
)

var sessionsShape = mustShape("sessions", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":                str,
		"sessionName":       str,
		"instructorName":    str,
		"date":              str,
		"startTime":         str,
		"endTime":           str,
		"durationHours":     nonNeg,
		"simulator":         str,
		"sessionType":       map[string]any{"enum": labels(records.SessionTypes())},
		"downtimeMinutes":   map[string]any{"type": "integer", "minimum": 0},
		"isSessionLost":     map[string]any{"type": "boolean"},
		"sessionLostReason": str,
		"notes":             str,
		"timestamp":         map[string]any{"type": "integer"},
	},
	"required": []any{
		"id", "sessionName", "instructorName", "date", "startTime", "endTime",
		"durationHours", "simulator", "sessionType", "downtimeMinutes",
		"isSessionLost", "timestamp",
	},
})

var issuesShape = mustShape("issues", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":              str,
		"reportedBy":      str,
		"date":            str,
		"severity":        map[string]any{"enum": labels(records.Severities())},
		"status":          map[string]any{"enum": labels(records.Statuses())},
		"component":       str,
		"description":     str,
		"resolutionNotes": str,
		"timestamp":       map[string]any{"type": "integer"},
	},
	"required": []any{
		"id", "reportedBy", "date", "severity", "status", "component",
		"description", "timestamp",
	},
})

var maintenanceShape = mustShape("maintenance", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":              str,
		"date":            str,
		"technician":      str,
		"actionPerformed": str,
		"relatedIssueId":  str,
		"hoursSpent":      nonNeg,
		"timestamp":       map[string]any{"type": "integer"},
	},
	"required": []any{
		"id", "date", "technician", "actionPerformed", "hoursSpent", "timestamp",
	},
})
