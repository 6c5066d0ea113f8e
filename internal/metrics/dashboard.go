package metrics

import "github.com/teniciavanaalten/simlog/internal/records"

// Dashboard is the owner overview over one snapshot of the collections.
type Dashboard struct {
	FlightHours        float64
	MaintenanceHours   float64
	OpenIssues         int
	CriticalOpenIssues int
	SystemStatus       string
	ByInstructor       []InstructorHours
	ByComponent        []ComponentCount
	Sessions           int
	Issues             int
	MaintenanceLogs    int
}

// Summarize computes every dashboard aggregate.
func Summarize(sessions []records.Session, issues []records.Issue, logs []records.Maintenance) Dashboard {
	return Dashboard{
		FlightHours:        TotalFlightHours(sessions),
		MaintenanceHours:   TotalMaintenanceHours(logs),
		OpenIssues:         OpenIssues(issues),
		CriticalOpenIssues: CriticalOpenIssues(issues),
		SystemStatus:       SystemStatus(issues),
		ByInstructor:       HoursByInstructor(sessions),
		ByComponent:        IssuesByComponent(issues),
		Sessions:           len(sessions),
		Issues:             len(issues),
		MaintenanceLogs:    len(logs),
	}
}

// Grounded reports whether the simulator is grounded.
func (d Dashboard) Grounded() bool { return d.SystemStatus == StatusGrounded }
