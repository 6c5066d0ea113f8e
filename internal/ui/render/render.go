// Package render formats SimLog records and aggregates for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/teniciavanaalten/simlog/internal/metrics"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/ui/theme"
)

// ShortIDLen is how much of a record id the tables show.
const ShortIDLen = 8

// newTable returns a table in the SimLog style. cellStyle, when non-nil,
// overrides the style of body cells.
func newTable(headers []string, rows [][]string, cellStyle func(row, col int) (lipgloss.Style, bool)) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Header
			}
			if cellStyle != nil {
				if s, ok := cellStyle(row, col); ok {
					return s.Padding(0, 1)
				}
			}
			return theme.Cell
		})
	return t.String()
}

// Sessions renders the session log.
func Sessions(sessions []records.Session) string {
	if len(sessions) == 0 {
		return theme.Hint.Render("No sessions logged.")
	}
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		lost := ""
		if s.IsSessionLost {
			lost = "LOST: " + s.SessionLostReason
		}
		rows[i] = []string{
			s.Date,
			s.InstructorName,
			s.StartTime + "–" + s.EndTime,
			hours(s.DurationHours),
			s.SessionType.String(),
			strconv.Itoa(s.DowntimeMinutes),
			lost,
		}
	}
	return newTable(
		[]string{"Date", "Instructor", "Time", "Hours", "Type", "Downtime (min)", "Lost"},
		rows,
		func(row, col int) (lipgloss.Style, bool) {
			if col == 6 && sessions[row].IsSessionLost {
				return theme.Warning, true
			}
			return lipgloss.Style{}, false
		},
	)
}

// Issues renders issue reports.
func Issues(issues []records.Issue) string {
	if len(issues) == 0 {
		return theme.Hint.Render("No issues reported.")
	}
	rows := make([][]string, len(issues))
	for i, is := range issues {
		rows[i] = []string{
			ShortID(is.ID),
			isoDate(is.Date),
			is.Component,
			is.Severity.String(),
			is.Status.String(),
			is.ReportedBy,
			is.Description,
		}
	}
	return newTable(
		[]string{"ID", "Date", "Component", "Severity", "Status", "Reported By", "Description"},
		rows,
		func(row, col int) (lipgloss.Style, bool) {
			switch col {
			case 3:
				return theme.SeverityStyle(issues[row].Severity), true
			case 4:
				return theme.StatusStyle(issues[row].Status), true
			}
			return lipgloss.Style{}, false
		},
	)
}

// Maintenance renders the maintenance log.
func Maintenance(logs []records.Maintenance) string {
	if len(logs) == 0 {
		return theme.Hint.Render("No maintenance logged.")
	}
	rows := make([][]string, len(logs))
	for i, m := range logs {
		rows[i] = []string{
			isoDate(m.Date),
			m.Technician,
			m.ActionPerformed,
			hours(m.HoursSpent),
			ShortID(m.RelatedIssueID),
		}
	}
	return newTable([]string{"Date", "Technician", "Action", "Hours", "Issue"}, rows, nil)
}

// Dashboard renders the owner overview: system status, totals and the
// per-instructor and per-component breakdowns.
func Dashboard(d metrics.Dashboard) string {
	status := theme.Operational.Render(d.SystemStatus)
	if d.Grounded() {
		status = theme.Warning.Render(strings.ToUpper(d.SystemStatus))
	}

	summary := strings.Join([]string{
		kv("System status", status),
		kv("Flight hours", theme.Value.Render(hours(d.FlightHours))),
		kv("Maintenance hours", theme.Value.Render(hours(d.MaintenanceHours))),
		kv("Open issues", theme.Value.Render(strconv.Itoa(d.OpenIssues))),
		kv("Critical open", criticalCount(d.CriticalOpenIssues)),
		kv("Records", theme.Hint.Render(fmt.Sprintf("%d sessions, %d issues, %d maintenance", d.Sessions, d.Issues, d.MaintenanceLogs))),
	}, "\n")

	var b strings.Builder
	b.WriteString(theme.Title.Render("SimLog Dashboard"))
	b.WriteString("\n")
	b.WriteString(theme.Card.Render(summary))
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Hours by instructor"))
	b.WriteString("\n")
	if len(d.ByInstructor) == 0 {
		b.WriteString(theme.Hint.Render("No sessions logged."))
	} else {
		rows := make([][]string, len(d.ByInstructor))
		for i, ih := range d.ByInstructor {
			rows[i] = []string{ih.Name, hours(ih.Hours)}
		}
		b.WriteString(newTable([]string{"Instructor", "Hours"}, rows, nil))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Issues by component"))
	b.WriteString("\n")
	if len(d.ByComponent) == 0 {
		b.WriteString(theme.Hint.Render("No issues reported."))
	} else {
		rows := make([][]string, len(d.ByComponent))
		for i, cc := range d.ByComponent {
			rows[i] = []string{cc.Name, strconv.Itoa(cc.Count)}
		}
		b.WriteString(newTable([]string{"Component", "Issues"}, rows, nil))
	}
	return b.String()
}

// Analysis frames the maintenance chief's briefing.
func Analysis(text string) string {
	return theme.Title.Render("Maintenance Chief Analysis") + "\n" + theme.Card.Render(text)
}

// ShortID trims a record id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

func kv(label, value string) string {
	return theme.Label.Render(fmt.Sprintf("%-18s", label)) + value
}

func criticalCount(n int) string {
	if n > 0 {
		return theme.Warning.Render(strconv.Itoa(n))
	}
	return theme.Value.Render("0")
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// isoDate shows the calendar date of an RFC 3339 timestamp in local time.
// Unparseable values are shown as stored.
func isoDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}
