package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teniciavanaalten/simlog/internal/llm"
)

// Readiness levels a brief may report.
const (
	ReadinessGreen  = "Green"
	ReadinessYellow = "Yellow"
	ReadinessRed    = "Red"
)

// Brief is the structured briefing returned by the model.
type Brief struct {
	Readiness string   `json:"readiness"`
	Points    []string `json:"points"`
}

// String renders the brief for the terminal.
func (b Brief) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Operational readiness: %s\n", b.Readiness)
	for _, p := range b.Points {
		fmt.Fprintf(&sb, "• %s\n", strings.TrimSpace(p))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BriefSchema constrains the model output to a readiness level and at
// most three bullet points.
var BriefSchema = &llm.Schema{
	Name:        "maintenance-brief",
	Description: "Executive maintenance summary for the simulator owner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"readiness": map[string]any{
				"type":        "string",
				"description": "Operational readiness of the facility",
				"enum":        []string{ReadinessGreen, ReadinessYellow, ReadinessRed},
			},
			"points": map[string]any{
				"type":        "array",
				"description": "Briefing bullet points, most urgent first",
				"items":       map[string]any{"type": "string"},
				"maxItems":    3,
			},
		},
		"required":             []string{"readiness", "points"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are an expert flight simulator maintenance chief writing for the facility owner.
Be brief, professional and aviation-focused.`

// userPrompt lays out the data context and the three topics the briefing
// must cover.
func userPrompt(dc DataContext) string {
	issues, _ := json.Marshal(dc.OpenIssues)
	actions := make([]map[string]string, len(dc.RecentActions))
	for i, a := range dc.RecentActions {
		actions[i] = map[string]string{"action": a}
	}
	maint, _ := json.Marshal(actions)

	var b strings.Builder
	b.WriteString("Analyze this data from our flight simulator facility.\n\n")
	b.WriteString("Data context:\n")
	fmt.Fprintf(&b, "Open issues: %s\n", issues)
	fmt.Fprintf(&b, "Recent maintenance: %s\n", maint)
	fmt.Fprintf(&b, "Recent usage: %d sessions in the last period, %g hours logged.\n\n", dc.RecentSessionCount, dc.RecentHours)
	b.WriteString("Give at most 3 bullet points covering:\n")
	b.WriteString("1. Critical attention items, if any issue is grounding or high severity.\n")
	b.WriteString("2. Suggested maintenance actions based on patterns in the data.\n")
	b.WriteString("3. Operational readiness status (Green/Yellow/Red).\n")
	return b.String()
}
