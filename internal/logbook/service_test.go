package logbook

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/store"
)

var testNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	clock := func() time.Time { return testNow }
	st, err := store.Open(filepath.Join(t.TempDir(), "simlog.db"), store.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return NewService(st, WithClock(clock), WithIDs(ids)), st
}

func validSession() SessionInput {
	return SessionInput{
		Instructor:   "Capt. Reynolds",
		Date:         "2024-05-20",
		StartTime:    "09:00",
		EndTime:      "11:30",
		SessionType:  "Certified",
		Declarations: AllDeclared(),
	}
}

func TestLogSession(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	before, err := st.Sessions().All(ctx)
	require.NoError(t, err)

	sess, err := svc.LogSession(ctx, validSession())
	require.NoError(t, err)

	assert.Equal(t, "id-1", sess.ID)
	assert.Equal(t, "Airbus A320_2024-05-20", sess.SessionName)
	assert.Equal(t, records.DefaultSimulator, sess.Simulator)
	assert.Equal(t, 2.5, sess.DurationHours)
	assert.Equal(t, records.SessionCertified, sess.SessionType)
	assert.Equal(t, testNow.UnixMilli(), sess.Timestamp)
	assert.Empty(t, sess.SessionLostReason)

	after, err := st.Sessions().All(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, sess, after[0])
}

func TestLogSessionMidnightCrossing(t *testing.T) {
	svc, _ := newTestService(t)
	in := validSession()
	in.StartTime, in.EndTime = "23:00", "01:00"

	sess, err := svc.LogSession(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sess.DurationHours)
}

func TestLogSessionLostReason(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := validSession()
	in.SessionLost = true
	in.LostReason = "   "
	_, err := svc.LogSession(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "please provide an explanation for the lost session", verr.Message("lostReason"))

	in.LostReason = "Visual system failure"
	sess, err := svc.LogSession(ctx, in)
	require.NoError(t, err)
	assert.True(t, sess.IsSessionLost)
	assert.Equal(t, "Visual system failure", sess.SessionLostReason)
}

func TestLogSessionIgnoresReasonWhenNotLost(t *testing.T) {
	svc, _ := newTestService(t)
	in := validSession()
	in.LostReason = "stale text from the form"

	sess, err := svc.LogSession(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, sess.SessionLostReason)
}

func TestLogSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SessionInput)
		field  string
	}{
		{"blank instructor", func(in *SessionInput) { in.Instructor = " " }, "instructor"},
		{"missing session type", func(in *SessionInput) { in.SessionType = "" }, "sessionType"},
		{"unknown session type", func(in *SessionInput) { in.SessionType = "Checkride" }, "sessionType"},
		{"bad date", func(in *SessionInput) { in.Date = "20/05/2024" }, "date"},
		{"bad start", func(in *SessionInput) { in.StartTime = "9am" }, "startTime"},
		{"missing end", func(in *SessionInput) { in.EndTime = "" }, "endTime"},
		{"negative downtime", func(in *SessionInput) { in.DowntimeMinutes = -1 }, "downtimeMinutes"},
		{"unknown simulator", func(in *SessionInput) { in.Simulator = "Cessna 172" }, "simulator"},
		{"startup checklist", func(in *SessionInput) { in.Declarations.StartupChecklist = false }, "declarations.startupChecklist"},
		{"safety briefing", func(in *SessionInput) { in.Declarations.SafetyBriefing = false }, "declarations.safetyBriefing"},
		{"shutdown checklist", func(in *SessionInput) { in.Declarations.ShutdownChecklist = false }, "declarations.shutdownChecklist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t)
			in := validSession()
			tt.mutate(&in)

			_, err := svc.LogSession(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Message(tt.field), "fields: %+v", verr.Fields)

			got, err := st.Sessions().All(context.Background())
			require.NoError(t, err)
			assert.Equal(t, store.SeedSessions(testNow), got, "nothing written on invalid input")
		})
	}
}

func TestReportIssue(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	issue, err := svc.ReportIssue(ctx, IssueInput{
		Component:   "Motion Platform",
		Severity:    "critical",
		Description: "Hydraulic leak at actuator 2",
	})
	require.NoError(t, err)
	assert.Equal(t, records.UnknownReporter, issue.ReportedBy)
	assert.Equal(t, records.StatusOpen, issue.Status)
	assert.Equal(t, records.SeverityCritical, issue.Severity)
	assert.Equal(t, "2024-05-20T12:00:00.000Z", issue.Date)

	all, err := st.Issues().All(ctx)
	require.NoError(t, err)
	assert.Equal(t, issue, all[0])

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, dash.Grounded())
	assert.Equal(t, 2, dash.OpenIssues)
}

func TestReportIssueValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ReportIssue(context.Background(), IssueInput{
		Component:   "Coffee Machine",
		Severity:    "apocalyptic",
		Description: "",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("component"))
	assert.NotEmpty(t, verr.Message("severity"))
	assert.Equal(t, "description cannot be blank", verr.Message("description"))
}

func TestLogMaintenance(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	log, err := svc.LogMaintenance(ctx, MaintenanceInput{
		Technician:     "Tech Mike",
		Action:         "Recalibrated projector 2",
		Hours:          1.5,
		RelatedIssueID: "i2",
	})
	require.NoError(t, err)
	assert.Equal(t, "i2", log.RelatedIssueID)
	assert.Equal(t, 1.5, log.HoursSpent)

	all, err := st.Maintenance().All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, log, all[0])

	issue, _, err := st.Issues().Find(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, records.StatusOpen, issue.Status, "logging work does not resolve the issue")
}

func TestLogMaintenanceUnknownRelatedIssue(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.LogMaintenance(context.Background(), MaintenanceInput{
		Technician: "Tech Mike", Action: "Inspect", Hours: 1, RelatedIssueID: "nope",
	})
	require.ErrorIs(t, err, ErrIssueNotFound)
}

func TestLogMaintenanceValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.LogMaintenance(context.Background(), MaintenanceInput{Hours: -2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("technician"))
	assert.NotEmpty(t, verr.Message("action"))
	assert.NotEmpty(t, verr.Message("hours"))
}

func TestResolveIssue(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	maintBefore, err := st.Maintenance().All(ctx)
	require.NoError(t, err)

	res, err := svc.ResolveIssue(ctx, ResolveInput{IssueID: "i2"})
	require.NoError(t, err)

	assert.Equal(t, records.StatusResolved, res.Issue.Status)
	assert.Equal(t, "i2", res.Maintenance.RelatedIssueID)
	assert.Equal(t, 1.0, res.Maintenance.HoursSpent)
	assert.Equal(t, AdminTechnician, res.Maintenance.Technician)
	assert.Equal(t, "Resolved issue: Projector 2 flickering intermittently.", res.Maintenance.ActionPerformed)

	issue, ok, err := st.Issues().Find(ctx, "i2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, records.StatusResolved, issue.Status)

	maintAfter, err := st.Maintenance().All(ctx)
	require.NoError(t, err)
	require.Len(t, maintAfter, len(maintBefore)+1)
	assert.Equal(t, res.Maintenance, maintAfter[0])

	issues, err := st.Issues().All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, []string{issues[0].ID, issues[1].ID}, "order kept")
}

func TestResolveIssueWithNotes(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.ResolveIssue(context.Background(), ResolveInput{
		IssueID: "i2", Technician: "Tech Mike", Notes: "Replaced lamp",
	})
	require.NoError(t, err)
	assert.Equal(t, "Replaced lamp", res.Issue.ResolutionNotes)
	assert.Equal(t, "Tech Mike", res.Maintenance.Technician)
}

func TestResolveIssueErrorsChangeNothing(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want error
	}{
		{"unknown", "zzz", ErrIssueNotFound},
		{"already resolved", "i1", ErrAlreadyResolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()

			_, err := svc.ResolveIssue(ctx, ResolveInput{IssueID: tt.id})
			require.ErrorIs(t, err, tt.want)

			snap, err := svc.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, store.SeedIssues(testNow), snap.Issues)
			assert.Equal(t, store.SeedMaintenance(testNow), snap.Maintenance)
		})
	}
}

func TestResolveIssueTwice(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	_, err := svc.ResolveIssue(ctx, ResolveInput{IssueID: "i2"})
	require.NoError(t, err)
	_, err = svc.ResolveIssue(ctx, ResolveInput{IssueID: "i2"})
	require.ErrorIs(t, err, ErrAlreadyResolved)

	all, err := st.Maintenance().All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "second resolve logs nothing")
}

func TestPendingSquawks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pending, err := svc.PendingSquawks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "i2", pending[0].ID)

	_, err = svc.ResolveIssue(ctx, ResolveInput{IssueID: "i2"})
	require.NoError(t, err)

	pending, err = svc.PendingSquawks(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
