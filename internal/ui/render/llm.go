package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/teniciavanaalten/simlog/internal/analysis"
	"github.com/teniciavanaalten/simlog/internal/llm"
	"github.com/teniciavanaalten/simlog/internal/store"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

const modelWidth = 32

// Brief renders a structured briefing with the readiness level colored.
func Brief(b analysis.Brief) string {
	var sb strings.Builder
	sb.WriteString(theme.Label.Render("Operational readiness: "))
	sb.WriteString(theme.ReadinessStyle(b.Readiness).Render(b.Readiness))
	for _, p := range b.Points {
		sb.WriteString("\n• ")
		sb.WriteString(strings.TrimSpace(p))
	}
	return Analysis(sb.String())
}

// LLMEvents renders the request log, newest first.
func LLMEvents(events []store.LLMEvent) string {
	if len(events) == 0 {
		return theme.Hint.Render("No LLM events found.")
	}
	rows := make([][]string, len(events))
	for i, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		rows[i] = []string{
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, modelWidth),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		}
	}
	return newTable(
		[]string{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"},
		rows,
		func(row, col int) (lipgloss.Style, bool) {
			if col != 7 {
				return lipgloss.Style{}, false
			}
			if events[row].Success {
				return theme.Success, true
			}
			return theme.Error, true
		},
	)
}

// LLMEvent renders one event with its captured request and response.
func LLMEvent(e store.LLMEvent) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(theme.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("ID:", strconv.Itoa(e.ID))
	field("Time:", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	field("Provider:", e.Provider)
	field("Model:", e.Model)
	field("Purpose:", e.Purpose)
	field("Tokens:", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency:", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success:", strconv.FormatBool(e.Success))
	if e.ErrorMessage != "" {
		field("Error:", theme.Error.Render(e.ErrorMessage))
	}

	sep := theme.Label.Render(strings.Repeat("─", 60))
	section := func(title, body string) {
		b.WriteString("\n" + sep + "\n")
		b.WriteString(theme.Title.Render(title))
		b.WriteString("\n" + sep + "\n")
		if body == "" {
			body = theme.Hint.Render("(not captured)")
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
	return strings.TrimRight(b.String(), "\n")
}

// LLMUsage renders token usage per purpose and estimated cost per model.
func LLMUsage(byPurpose []store.PurposeUsage, byModel []store.ModelUsage) string {
	if len(byPurpose) == 0 {
		return theme.Hint.Render("No LLM usage recorded yet.")
	}

	var calls, in, out int
	rows := make([][]string, 0, len(byPurpose)+1)
	for _, u := range byPurpose {
		rows = append(rows, []string{
			u.Purpose,
			strconv.Itoa(u.Calls),
			strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens + u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10),
		})
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	rows = append(rows, []string{"TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in + out), ""})

	var b strings.Builder
	b.WriteString(theme.Title.Render("Usage by Purpose"))
	b.WriteString("\n")
	b.WriteString(newTable([]string{"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms"}, rows, totalRow(len(rows)-1)))

	if len(byModel) == 0 {
		return b.String()
	}

	var (
		total   float64
		unknown []string
	)
	costRows := make([][]string, 0, len(byModel)+1)
	for _, mu := range byModel {
		cost := "?"
		if mc := llm.LookupCost(mu.Model); mc != nil {
			c := mc.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = FormatCost(c)
		} else {
			unknown = append(unknown, mu.Model)
		}
		costRows = append(costRows, []string{
			truncate(mu.Model, modelWidth),
			strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens),
			strconv.Itoa(mu.OutputTokens),
			cost,
		})
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	costRows = append(costRows, []string{label, "", "", "", FormatCost(total)})

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Estimated Cost (USD)"))
	b.WriteString("\n")
	b.WriteString(newTable([]string{"Model", "Calls", "Input", "Output", "Cost"}, costRows, totalRow(len(costRows)-1)))
	if len(unknown) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Pricing unavailable for: " + strings.Join(unknown, ", ")))
	}
	return b.String()
}

// FormatCost prints sub-cent amounts with four decimals.
func FormatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func totalRow(last int) func(row, col int) (lipgloss.Style, bool) {
	return func(row, col int) (lipgloss.Style, bool) {
		if row == last {
			return theme.Value, true
		}
		return lipgloss.Style{}, false
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
