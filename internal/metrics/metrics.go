// Package metrics computes the dashboard aggregates from snapshots of the
// SimLog collections. Every function is pure and recomputes from its input.
package metrics

import "github.com/teniciavanaalten/simlog/internal/records"

// System status values.
const (
	StatusGrounded    = "Grounded"
	StatusOperational = "Operational"
)

// InstructorHours is the summed session time of one instructor.
type InstructorHours struct {
	Name  string
	Hours float64
}

// ComponentCount is the number of issues filed against one component.
type ComponentCount struct {
	Name  string
	Count int
}

// TotalFlightHours sums DurationHours over sessions.
func TotalFlightHours(sessions []records.Session) float64 {
	var total float64
	for _, s := range sessions {
		total += s.DurationHours
	}
	return total
}

// TotalMaintenanceHours sums HoursSpent over maintenance records.
func TotalMaintenanceHours(logs []records.Maintenance) float64 {
	var total float64
	for _, m := range logs {
		total += m.HoursSpent
	}
	return total
}

// OpenIssues counts issues that are not resolved.
func OpenIssues(issues []records.Issue) int {
	n := 0
	for _, i := range issues {
		if i.Open() {
			n++
		}
	}
	return n
}

// CriticalOpenIssues counts unresolved critical issues.
func CriticalOpenIssues(issues []records.Issue) int {
	n := 0
	for _, i := range issues {
		if i.Grounding() {
			n++
		}
	}
	return n
}

// SystemStatus is Grounded while any critical issue is unresolved.
func SystemStatus(issues []records.Issue) string {
	if CriticalOpenIssues(issues) > 0 {
		return StatusGrounded
	}
	return StatusOperational
}

// OpenIssueList returns the unresolved issues, keeping input order.
func OpenIssueList(issues []records.Issue) []records.Issue {
	out := []records.Issue{}
	for _, i := range issues {
		if i.Open() {
			out = append(out, i)
		}
	}
	return out
}

// HoursByInstructor sums session hours per instructor in first-seen order.
func HoursByInstructor(sessions []records.Session) []InstructorHours {
	out := []InstructorHours{}
	index := map[string]int{}
	for _, s := range sessions {
		if i, ok := index[s.InstructorName]; ok {
			out[i].Hours += s.DurationHours
			continue
		}
		index[s.InstructorName] = len(out)
		out = append(out, InstructorHours{Name: s.InstructorName, Hours: s.DurationHours})
	}
	return out
}

// IssuesByComponent counts issues per component in first-seen order.
func IssuesByComponent(issues []records.Issue) []ComponentCount {
	out := []ComponentCount{}
	index := map[string]int{}
	for _, is := range issues {
		if i, ok := index[is.Component]; ok {
			out[i].Count++
			continue
		}
		index[is.Component] = len(out)
		out = append(out, ComponentCount{Name: is.Component, Count: 1})
	}
	return out
}
