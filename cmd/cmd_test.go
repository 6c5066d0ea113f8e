package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teniciavanaalten/simlog/internal/analysis"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/store"
)

var llmEnv = []string{
	"SIMLOG_LLM_PROVIDER", "SIMLOG_LLM_TIMEOUT", "SIMLOG_LLM_MAX_ATTEMPTS",
	"SIMLOG_GEMINI_API_KEY", "SIMLOG_ANTHROPIC_API_KEY", "SIMLOG_OPENAI_API_KEY", "SIMLOG_OPENROUTER_API_KEY",
	"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
}

// cli runs simlog commands against one temp database.
type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, k := range llmEnv {
		t.Setenv(k, "")
	}
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "simlog.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--db", c.dbPath}, args...))
	err := rootCmd.Execute()
	return ansi.Strip(out.String()), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "simlog %s", strings.Join(args, " "))
	return out
}

func (c *cli) issues() []records.Issue {
	c.t.Helper()
	s, err := store.Open(c.dbPath)
	require.NoError(c.t, err)
	defer s.Close()
	issues, err := s.Issues().All(context.Background())
	require.NoError(c.t, err)
	return issues
}

// resetFlags restores every flag to its default so commands do not see
// values from a previous run.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSessionLogAndList(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("session", "log",
		"--instructor", "Capt. Rivera", "--date", "2024-05-20", "--start", "23:00", "--end", "01:30", "--type", "Certified",
		"--startup-checklist", "--safety-briefing", "--shutdown-checklist")
	assert.Contains(t, out, "Logged Airbus A320_2024-05-20: 2.5 hours.")

	out = c.mustRun("session", "list", "--instructor", "Capt. Rivera")
	assert.Contains(t, out, "Capt. Rivera")
	assert.Contains(t, out, "23:00–01:30")
}

func TestSessionLogValidation(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("session", "log", "--instructor", "Capt. Rivera", "--date", "2024-05-20",
		"--start", "09:00", "--end", "10:00", "--lost")
	require.Error(t, err)

	msg := FormatError(err)
	assert.True(t, strings.HasPrefix(msg, "error: invalid input"))
	assert.Contains(t, msg, "declarations.safetyBriefing")
	assert.Contains(t, msg, "lostReason: please provide an explanation for the lost session")

	out := c.mustRun("session", "list", "--instructor", "Capt. Rivera")
	assert.Contains(t, out, "No sessions logged.")
}

func TestSessionLogRequiresType(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("session", "log", "--instructor", "Capt. Rivera", "--date", "2024-05-20",
		"--start", "09:00", "--end", "10:00",
		"--startup-checklist", "--safety-briefing", "--shutdown-checklist")
	require.Error(t, err)
	assert.Contains(t, FormatError(err), "sessionType: please select a session type (Certified or Non-Certified)")

	out := c.mustRun("session", "log", "--instructor", "Capt. Rivera", "--date", "2024-05-20",
		"--start", "09:00", "--end", "10:00", "--type", "non-certified",
		"--startup-checklist", "--safety-briefing", "--shutdown-checklist")
	assert.Contains(t, out, "Logged Airbus A320_2024-05-20: 1 hours.")
}

func TestIssueResolveBlankID(t *testing.T) {
	c := newCLI(t)

	for _, arg := range []string{"", "  "} {
		_, err := c.run("issue", "resolve", arg)
		assert.ErrorContains(t, err, "issue id is required", "%q", arg)
	}
	out := c.mustRun("issue", "pending")
	assert.Contains(t, out, "Projector 2 flickering", "seed issue stays open")
}

func TestIssueWorkflow(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("issue", "report", "Actuator 2 hydraulic leak",
		"--component", "Motion Platform", "--severity", "critical", "--by", "F/O Chen")
	assert.Contains(t, out, "against Motion Platform")
	assert.Contains(t, out, "GROUNDED")

	out = c.mustRun("dashboard")
	assert.Contains(t, out, "GROUNDED")
	assert.Contains(t, out, "Open squawks")

	issues := c.issues()
	require.Equal(t, "Actuator 2 hydraulic leak", issues[0].Description)
	id := issues[0].ID

	out = c.mustRun("maintenance", "log", "Bled actuator lines", "--technician", "Sam", "--hours", "2", "--issue", id[:8])
	assert.Contains(t, out, "Logged 2 hours of maintenance by Sam.")

	out = c.mustRun("issue", "pending")
	assert.Contains(t, out, "Actuator 2 hydraulic leak")
	assert.Contains(t, out, "Projector 2 flickering")

	out = c.mustRun("issue", "resolve", id[:8], "--notes", "Replaced seal")
	assert.Contains(t, out, "Resolved issue "+id[:8]+" (Motion Platform). Logged 1 hours of maintenance.")

	out = c.mustRun("issue", "pending")
	assert.NotContains(t, out, "Actuator 2 hydraulic leak")

	out = c.mustRun("issue", "list", "--status", "resolved")
	assert.Contains(t, out, "Actuator 2 hydraulic leak")
	assert.NotContains(t, out, "Projector 2 flickering")

	out = c.mustRun("maintenance", "list")
	assert.Contains(t, out, "Resolved issue: Actuator 2 hydraulic leak")
	assert.Contains(t, out, "Bled actuator lines")

	_, err := c.run("issue", "resolve", id)
	require.Error(t, err)
	assert.Contains(t, FormatError(err), "already resolved")

	_, err = c.run("issue", "list", "--status", "closed")
	assert.Error(t, err)
}

func TestIssueReportValidation(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("issue", "report", "Loose yoke", "--component", "Galley")
	require.Error(t, err)
	assert.Contains(t, FormatError(err), "component:")
	assert.Len(t, c.issues(), 2, "seed issues only")
}

func TestReset(t *testing.T) {
	c := newCLI(t)
	c.mustRun("issue", "report", "Loose yoke", "--component", "Controls (Yoke/Pedals)")
	require.Len(t, c.issues(), 3)

	out := c.mustRun("reset")
	assert.Contains(t, out, "Aborted.")
	require.Len(t, c.issues(), 3)

	out = c.mustRun("reset", "--yes")
	assert.Contains(t, out, "Demo records restored.")
	assert.Len(t, c.issues(), 2)
}

func TestAnalyzeNotConfigured(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("analyze")
	assert.Contains(t, out, analysis.NotConfiguredMessage)
}

func TestAnalyzeFallbackIsLogged(t *testing.T) {
	c := newCLI(t)
	t.Setenv("SIMLOG_LLM_PROVIDER", "mock")

	out := c.mustRun("dashboard", "--analyze")
	assert.Contains(t, out, "Maintenance Chief Analysis")
	assert.Contains(t, out, analysis.FallbackMessage)

	out = c.mustRun("llm", "list", "--purpose", analysis.Purpose)
	assert.Contains(t, out, analysis.Purpose)
	assert.Contains(t, out, "✗")

	out = c.mustRun("llm", "view", "1")
	assert.Contains(t, out, "[schema: maintenance-brief]")

	out = c.mustRun("llm", "stats")
	assert.Contains(t, out, "Usage by Purpose")

	_, err := c.run("llm", "view", "99")
	assert.ErrorContains(t, err, "event 99 not found")
}

func TestMatchIssueID(t *testing.T) {
	issues := []records.Issue{{ID: "ab12-1"}, {ID: "ab12-2"}, {ID: "cd34"}}

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"cd34", "cd34", false},
		{"cd", "cd34", false},
		{"ab12-2", "ab12-2", false},
		{"ab12", "", true},
		{"zz", "zz", false},
		{"", "", true},
		{" ", "", true},
	}
	for _, tt := range tests {
		got, err := matchIssueID(issues, tt.arg)
		if tt.wantErr {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got, tt.arg)
	}
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, "simlog (devel)\n", c.mustRun("version"))
}
