// Package logbook implements the submissions each SimLog role performs:
// instructors log sessions and report issues, technicians log maintenance,
// and the owner resolves issues.
package logbook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teniciavanaalten/simlog/internal/metrics"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/store"
)

// Service validates role input, builds records and writes them to the store.
type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for record dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides record id generation.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service writing to st.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogSession records a simulator session. The duration and session name
// are derived; nothing is written if the input is invalid.
func (s *Service) LogSession(ctx context.Context, in SessionInput) (records.Session, error) {
	in = in.withDefaults()
	if err := check(in); err != nil {
		return records.Session{}, err
	}
	typ, err := records.ParseSessionType(in.SessionType)
	if err != nil {
		return records.Session{}, err
	}

	now := s.now()
	sess := records.Session{
		ID:              s.newID(),
		SessionName:     records.SessionName(in.Simulator, in.Date),
		InstructorName:  strings.TrimSpace(in.Instructor),
		Date:            in.Date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationHours:   records.Duration(in.StartTime, in.EndTime),
		Simulator:       in.Simulator,
		SessionType:     typ,
		DowntimeMinutes: in.DowntimeMinutes,
		IsSessionLost:   in.SessionLost,
		Notes:           strings.TrimSpace(in.Notes),
		Timestamp:       records.Millis(now),
	}
	if in.SessionLost {
		sess.SessionLostReason = strings.TrimSpace(in.LostReason)
	}

	if err := s.store.Sessions().Add(ctx, sess); err != nil {
		return records.Session{}, fmt.Errorf("log session: %w", err)
	}
	return sess, nil
}

// ReportIssue files a new open issue.
func (s *Service) ReportIssue(ctx context.Context, in IssueInput) (records.Issue, error) {
	if err := check(in); err != nil {
		return records.Issue{}, err
	}
	sev, err := records.ParseSeverity(in.Severity)
	if err != nil {
		return records.Issue{}, err
	}

	reporter := strings.TrimSpace(in.ReportedBy)
	if reporter == "" {
		reporter = records.UnknownReporter
	}

	now := s.now()
	issue := records.Issue{
		ID:          s.newID(),
		ReportedBy:  reporter,
		Date:        records.ISOTime(now),
		Severity:    sev,
		Status:      records.StatusOpen,
		Component:   in.Component,
		Description: strings.TrimSpace(in.Description),
		Timestamp:   records.Millis(now),
	}
	if err := s.store.Issues().Add(ctx, issue); err != nil {
		return records.Issue{}, fmt.Errorf("report issue: %w", err)
	}
	return issue, nil
}

// LogMaintenance records work performed. A related issue id, when given,
// must name an existing issue.
func (s *Service) LogMaintenance(ctx context.Context, in MaintenanceInput) (records.Maintenance, error) {
	if err := check(in); err != nil {
		return records.Maintenance{}, err
	}

	related := strings.TrimSpace(in.RelatedIssueID)
	if related != "" {
		_, ok, err := s.store.Issues().Find(ctx, related)
		if err != nil {
			return records.Maintenance{}, fmt.Errorf("log maintenance: %w", err)
		}
		if !ok {
			return records.Maintenance{}, fmt.Errorf("log maintenance: related issue %q: %w", related, ErrIssueNotFound)
		}
	}

	now := s.now()
	log := records.Maintenance{
		ID:              s.newID(),
		Date:            records.ISOTime(now),
		Technician:      strings.TrimSpace(in.Technician),
		ActionPerformed: strings.TrimSpace(in.Action),
		RelatedIssueID:  related,
		HoursSpent:      in.Hours,
		Timestamp:       records.Millis(now),
	}
	if err := s.store.Maintenance().Add(ctx, log); err != nil {
		return records.Maintenance{}, fmt.Errorf("log maintenance: %w", err)
	}
	return log, nil
}

// ResolveIssue marks an open issue resolved and logs the maintenance entry
// for it. Both writes happen in one transaction.
func (s *Service) ResolveIssue(ctx context.Context, in ResolveInput) (Resolution, error) {
	if err := check(in); err != nil {
		return Resolution{}, err
	}
	technician := strings.TrimSpace(in.Technician)
	if technician == "" {
		technician = AdminTechnician
	}

	var res Resolution
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		issue, ok, err := tx.Issues().Find(ctx, in.IssueID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("resolve %q: %w", in.IssueID, ErrIssueNotFound)
		}
		if issue.Status.Resolved() {
			return fmt.Errorf("resolve %q: %w", in.IssueID, ErrAlreadyResolved)
		}

		issue.Status = records.StatusResolved
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			issue.ResolutionNotes = notes
		}
		if _, err := tx.Issues().Update(ctx, issue); err != nil {
			return err
		}

		now := s.now()
		log := records.Maintenance{
			ID:              s.newID(),
			Date:            records.ISOTime(now),
			Technician:      technician,
			ActionPerformed: "Resolved issue: " + issue.Description,
			RelatedIssueID:  issue.ID,
			HoursSpent:      ResolutionHours,
			Timestamp:       records.Millis(now),
		}
		if err := tx.Maintenance().Add(ctx, log); err != nil {
			return err
		}

		res = Resolution{Issue: issue, Maintenance: log}
		return nil
	})
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

// PendingSquawks returns the unresolved issues, newest first.
func (s *Service) PendingSquawks(ctx context.Context) ([]records.Issue, error) {
	issues, err := s.store.Issues().All(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.OpenIssueList(issues), nil
}

// Snapshot reads all three collections.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	sessions, err := s.store.Sessions().All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	issues, err := s.store.Issues().All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	logs, err := s.store.Maintenance().All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Sessions: sessions, Issues: issues, Maintenance: logs}, nil
}

// Dashboard summarizes the current collections.
func (s *Service) Dashboard(ctx context.Context) (metrics.Dashboard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return metrics.Dashboard{}, err
	}
	return metrics.Summarize(snap.Sessions, snap.Issues, snap.Maintenance), nil
}
