// Package records defines the SimLog record shapes shared by the store,
// the metrics helpers and the role operations.
package records

import "time"

// Record is implemented by every stored record kind.
type Record interface {
	// RecordID returns the record's unique identifier.
	RecordID() string
}

// Session is one block of simulator use logged by an instructor.
// DurationHours is derived from StartTime and EndTime at creation.
type Session struct {
	ID                string      `json:"id"`
	SessionName       string      `json:"sessionName"`
	InstructorName    string      `json:"instructorName"`
	Date              string      `json:"date"`      // YYYY-MM-DD
	StartTime         string      `json:"startTime"` // HH:mm
	EndTime           string      `json:"endTime"`   // HH:mm
	DurationHours     float64     `json:"durationHours"`
	Simulator         string      `json:"simulator"`
	SessionType       SessionType `json:"sessionType"`
	DowntimeMinutes   int         `json:"downtimeMinutes"`
	IsSessionLost     bool        `json:"isSessionLost"`
	SessionLostReason string      `json:"sessionLostReason,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	Timestamp         int64       `json:"timestamp"` // epoch ms
}

func (s Session) RecordID() string { return s.ID }

// Issue is a squawk against simulator equipment.
type Issue struct {
	ID              string   `json:"id"`
	ReportedBy      string   `json:"reportedBy"`
	Date            string   `json:"date"` // RFC 3339
	Severity        Severity `json:"severity"`
	Status          Status   `json:"status"`
	Component       string   `json:"component"`
	Description     string   `json:"description"`
	ResolutionNotes string   `json:"resolutionNotes,omitempty"`
	Timestamp       int64    `json:"timestamp"`
}

func (i Issue) RecordID() string { return i.ID }

// Open reports whether the issue still needs attention.
func (i Issue) Open() bool { return !i.Status.Resolved() }

// Grounding reports whether the issue keeps the simulator grounded.
func (i Issue) Grounding() bool { return i.Open() && i.Severity == SeverityCritical }

// Maintenance is a record of work performed on the simulator.
type Maintenance struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"` // RFC 3339
	Technician      string  `json:"technician"`
	ActionPerformed string  `json:"actionPerformed"`
	RelatedIssueID  string  `json:"relatedIssueId,omitempty"`
	HoursSpent      float64 `json:"hoursSpent"`
	Timestamp       int64   `json:"timestamp"`
}

func (m Maintenance) RecordID() string { return m.ID }

// Components is the fixed set of simulator subsystems an issue may name.
var Components = []string{
	"Visual System",
	"Motion Platform",
	"Avionics",
	"Controls (Yoke/Pedals)",
	"Instructor Station",
	"Software",
}

// Simulators lists the training devices sessions can be logged against.
var Simulators = []string{
	"Airbus A320",
}

// DefaultSimulator is used when a session does not name one.
const DefaultSimulator = "Airbus A320"

// UnknownReporter is recorded when an issue is filed without a name.
const UnknownReporter = "Unknown Instructor"

// IsComponent reports whether name is in Components.
func IsComponent(name string) bool {
	for _, c := range Components {
		if c == name {
			return true
		}
	}
	return false
}

// IsSimulator reports whether name is in Simulators.
func IsSimulator(name string) bool {
	for _, s := range Simulators {
		if s == name {
			return true
		}
	}
	return false
}

// Millis converts t to the epoch-millisecond timestamps records carry.
func Millis(t time.Time) int64 { return t.UnixMilli() }

// DateOnly formats t as the YYYY-MM-DD session date.
func DateOnly(t time.Time) string { return t.Format(time.DateOnly) }

// isoLayout is RFC 3339 with fixed milliseconds, e.g. 2024-05-18T09:00:00.000Z.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// ISOTime formats t as the RFC 3339 datetime issues and maintenance carry.
func ISOTime(t time.Time) string { return t.UTC().Format(isoLayout) }
