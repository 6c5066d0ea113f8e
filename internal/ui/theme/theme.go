// Package theme holds the SimLog terminal palette and styles.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/teniciavanaalten/simlog/internal/records"
)

// Palette: cockpit annunciator colors on slate.
var (
	Primary = lipgloss.Color("#38BDF8") // Sky
	Green   = lipgloss.Color("#22C55E")
	Amber   = lipgloss.Color("#F59E0B")
	Red     = lipgloss.Color("#EF4444")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Value = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Padding(0, 1)
)

// Annunciators
var (
	Operational = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	Caution = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Error = lipgloss.NewStyle().
		Foreground(Red)
)

// Card frames the dashboard summary.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 2)

// SeverityStyle colors a severity label.
func SeverityStyle(s records.Severity) lipgloss.Style {
	switch s {
	case records.SeverityCritical, records.SeverityHigh:
		return Warning
	case records.SeverityMedium:
		return Caution
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}

// StatusStyle colors an issue status.
func StatusStyle(s records.Status) lipgloss.Style {
	switch s {
	case records.StatusResolved:
		return Success
	case records.StatusInProgress:
		return Caution
	default:
		return Warning
	}
}

// ReadinessStyle colors a Green/Yellow/Red readiness word.
func ReadinessStyle(level string) lipgloss.Style {
	switch level {
	case "Green":
		return Operational
	case "Yellow":
		return Caution
	default:
		return Warning
	}
}
