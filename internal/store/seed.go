package store

import (
	"time"

	"github.com/teniciavanaalten/simlog/internal/records"
)

const day = 24 * time.Hour

// SeedSessions returns the example sessions shown before anything is
// logged. Dates are relative to now.
func SeedSessions(now time.Time) []records.Session {
	mk := func(id, instructor string, ago time.Duration, start, end string, typ records.SessionType, downtime int) records.Session {
		at := now.Add(-ago)
		date := records.DateOnly(at)
		return records.Session{
			ID:              id,
			SessionName:     records.SessionName(records.DefaultSimulator, date),
			InstructorName:  instructor,
			Date:            date,
			StartTime:       start,
			EndTime:         end,
			DurationHours:   records.Duration(start, end),
			Simulator:       records.DefaultSimulator,
			SessionType:     typ,
			DowntimeMinutes: downtime,
			Timestamp:       records.Millis(at),
		}
	}
	return []records.Session{
		mk("s1", "Capt. Reynolds", 2*day, "09:00", "11:30", records.SessionCertified, 0),
		mk("s2", "Inst. Maverick", day, "14:00", "15:30", records.SessionNonCertified, 15),
		mk("s3", "Capt. Reynolds", 0, "10:00", "13:00", records.SessionCertified, 0),
	}
}

// SeedIssues returns the example squawks: one resolved, one open.
func SeedIssues(now time.Time) []records.Issue {
	i1 := now.Add(-5 * day)
	i2 := now.Add(-12 * time.Hour)
	return []records.Issue{
		{
			ID:              "i1",
			ReportedBy:      "Capt. Reynolds",
			Date:            records.ISOTime(i1),
			Severity:        records.SeverityLow,
			Status:          records.StatusResolved,
			Component:       "Instructor Station",
			Description:     "Touchscreen lagging slightly.",
			ResolutionNotes: "Rebooted main server.",
			Timestamp:       records.Millis(i1),
		},
		{
			ID:          "i2",
			ReportedBy:  "Inst. Maverick",
			Date:        records.ISOTime(i2),
			Severity:    records.SeverityHigh,
			Status:      records.StatusOpen,
			Component:   "Visual System",
			Description: "Projector 2 flickering intermittently.",
			Timestamp:   records.Millis(i2),
		},
	}
}

// SeedMaintenance returns the example maintenance log.
func SeedMaintenance(now time.Time) []records.Maintenance {
	m1 := now.Add(-4 * day)
	return []records.Maintenance{
		{
			ID:              "m1",
			Date:            records.ISOTime(m1),
			Technician:      "Tech Mike",
			ActionPerformed: "Routine visual inspection",
			HoursSpent:      1,
			Timestamp:       records.Millis(m1),
		},
	}
}
