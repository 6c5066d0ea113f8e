package logbook

import (
	"errors"
	"strings"

	"github.com/teniciavanaalten/simlog/internal/records"
)

// Errors returned by the issue workflow.
var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrAlreadyResolved = errors.New("issue already resolved")
)

// Defaults applied by the role operations.
const (
	// ResolutionHours is logged for the maintenance entry created when an
	// issue is resolved.
	ResolutionHours = 1.0

	// AdminTechnician is the technician recorded for owner actions.
	AdminTechnician = "Owner (Admin)"
)

// Declarations are the checklist confirmations an instructor makes when
// logging a session. All must be true.
type Declarations struct {
	StartupChecklist  bool `json:"startupChecklist" validate:"declared"`
	SafetyBriefing    bool `json:"safetyBriefing" validate:"declared"`
	ShutdownChecklist bool `json:"shutdownChecklist" validate:"declared"`
}

// AllDeclared returns a Declarations with every confirmation set.
func AllDeclared() Declarations {
	return Declarations{StartupChecklist: true, SafetyBriefing: true, ShutdownChecklist: true}
}

// SessionInput is the instructor's session form.
type SessionInput struct {
	Instructor      string       `json:"instructor" validate:"notblank"`
	Simulator       string       `json:"simulator" validate:"simulator"`
	Date            string       `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string       `json:"startTime" validate:"required,clock"`
	EndTime         string       `json:"endTime" validate:"required,clock"`
	SessionType     string       `json:"sessionType" validate:"sessiontype"`
	DowntimeMinutes int          `json:"downtimeMinutes" validate:"gte=0"`
	SessionLost     bool         `json:"sessionLost"`
	LostReason      string       `json:"lostReason"`
	Notes           string       `json:"notes"`
	Declarations    Declarations `json:"declarations"`
}

// withDefaults fills the simulator when the form leaves it blank.
func (in SessionInput) withDefaults() SessionInput {
	if strings.TrimSpace(in.Simulator) == "" {
		in.Simulator = records.DefaultSimulator
	}
	return in
}

// IssueInput is the instructor's squawk form.
type IssueInput struct {
	ReportedBy  string `json:"reportedBy"`
	Component   string `json:"component" validate:"component"`
	Severity    string `json:"severity" validate:"severity"`
	Description string `json:"description" validate:"notblank"`
}

// MaintenanceInput is the technician's (or owner's) work log form.
type MaintenanceInput struct {
	Technician     string  `json:"technician" validate:"notblank"`
	Action         string  `json:"action" validate:"notblank"`
	Hours          float64 `json:"hours" validate:"gte=0"`
	RelatedIssueID string  `json:"relatedIssueId"`
}

// ResolveInput identifies the issue the owner marks resolved.
type ResolveInput struct {
	IssueID    string `json:"issueId" validate:"notblank"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
}

// Resolution is the outcome of resolving an issue: the updated issue and
// the maintenance entry logged for it.
type Resolution struct {
	Issue       records.Issue
	Maintenance records.Maintenance
}

// Snapshot is one read of all three collections.
type Snapshot struct {
	Sessions    []records.Session
	Issues      []records.Issue
	Maintenance []records.Maintenance
}
