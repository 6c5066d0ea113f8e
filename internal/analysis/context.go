package analysis

import (
	"math"

	"github.com/teniciavanaalten/simlog/internal/metrics"
	"github.com/teniciavanaalten/simlog/internal/records"
)

// Window sizes of the recent history sent with each request. Collections
// are stored newest first.
const (
	RecentMaintenance = 5
	RecentSessions    = 10
)

// IssueSummary is an open issue as the model sees it.
type IssueSummary struct {
	Severity    string `json:"sev"`
	Component   string `json:"comp"`
	Description string `json:"desc"`
}

// DataContext is the facility summary the briefing is based on.
type DataContext struct {
	OpenIssues         []IssueSummary
	RecentActions      []string
	RecentSessionCount int
	RecentHours        float64
}

// BuildContext summarizes the collections: every open issue, the latest
// maintenance actions and the latest sessions with their summed hours.
func BuildContext(issues []records.Issue, maintenance []records.Maintenance, sessions []records.Session) DataContext {
	dc := DataContext{
		OpenIssues:    []IssueSummary{},
		RecentActions: []string{},
	}
	for _, i := range metrics.OpenIssueList(issues) {
		dc.OpenIssues = append(dc.OpenIssues, IssueSummary{
			Severity:    i.Severity.String(),
			Component:   i.Component,
			Description: i.Description,
		})
	}
	for _, m := range maintenance[:min(len(maintenance), RecentMaintenance)] {
		dc.RecentActions = append(dc.RecentActions, m.ActionPerformed)
	}

	recent := sessions[:min(len(sessions), RecentSessions)]
	dc.RecentSessionCount = len(recent)
	dc.RecentHours = math.Round(metrics.TotalFlightHours(recent)*100) / 100
	return dc
}
