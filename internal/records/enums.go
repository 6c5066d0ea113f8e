package records

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity ranks how badly an issue affects the simulator.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	// SeverityCritical grounds the simulator until resolved.
	SeverityCritical
)

var severityLabels = map[Severity]string{
	SeverityLow:      "Low",
	SeverityMedium:   "Medium",
	SeverityHigh:     "High",
	SeverityCritical: "Critical (Grounded)",
}

// Severities lists every severity, lowest first.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

func (s Severity) String() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	_, ok := severityLabels[s]
	return ok
}

// ParseSeverity accepts a display label ("Critical (Grounded)") or a
// case-insensitive short name ("critical").
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range Severities() {
		if s == sev.String() {
			return sev, nil
		}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical", "grounded":
		return SeverityCritical, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal severity: invalid value %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	for _, sev := range Severities() {
		if label == sev.String() {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity label %q", label)
}

// Status is the lifecycle state of an issue. The only transition is
// Open or In Progress to Resolved.
type Status int

const (
	StatusOpen Status = iota + 1
	StatusInProgress
	StatusResolved
)

var statusLabels = map[Status]string{
	StatusOpen:       "Open",
	StatusInProgress: "In Progress",
	StatusResolved:   "Resolved",
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved}
}

func (s Status) String() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Resolved reports whether s is terminal.
func (s Status) Resolved() bool { return s == StatusResolved }

// ParseStatus accepts a display label or a case-insensitive name with
// spaces, hyphens or underscores ("in-progress").
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Statuses() {
		if norm == strings.ToLower(st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal status: invalid value %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	for _, st := range Statuses() {
		if label == st.String() {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status label %q", label)
}

// SessionType distinguishes certified training from other simulator use.
type SessionType int

const (
	SessionCertified SessionType = iota + 1
	SessionNonCertified
)

var sessionTypeLabels = map[SessionType]string{
	SessionCertified:    "Certified",
	SessionNonCertified: "Non-Certified",
}

// SessionTypes lists every session type.
func SessionTypes() []SessionType {
	return []SessionType{SessionCertified, SessionNonCertified}
}

func (t SessionType) String() string {
	if l, ok := sessionTypeLabels[t]; ok {
		return l
	}
	return fmt.Sprintf("SessionType(%d)", int(t))
}

// Valid reports whether t is one of the declared session types.
func (t SessionType) Valid() bool {
	_, ok := sessionTypeLabels[t]
	return ok
}

// ParseSessionType accepts "Certified" / "Non-Certified" in any case,
// with or without the hyphen.
func ParseSessionType(s string) (SessionType, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	switch norm {
	case "certified":
		return SessionCertified, nil
	case "non-certified", "noncertified":
		return SessionNonCertified, nil
	}
	return 0, fmt.Errorf("unknown session type %q", s)
}

func (t SessionType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("marshal session type: invalid value %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *SessionType) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	for _, st := range SessionTypes() {
		if label == st.String() {
			*t = st
			return nil
		}
	}
	return fmt.Errorf("unknown session type label %q", label)
}
