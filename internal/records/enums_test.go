package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityLabels(t *testing.T) {
	b, err := json.Marshal(SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, `"Critical (Grounded)"`, string(b))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"Medium"`), &s))
	assert.Equal(t, SeverityMedium, s)

	assert.Error(t, json.Unmarshal([]byte(`"Critical"`), &s), "short names are not labels")
	assert.Error(t, json.Unmarshal([]byte(`3`), &s))

	_, err = json.Marshal(Severity(0))
	assert.Error(t, err)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"Low", SeverityLow},
		{"medium", SeverityMedium},
		{"HIGH", SeverityHigh},
		{"critical", SeverityCritical},
		{"Critical (Grounded)", SeverityCritical},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSeverity("catastrophic")
	assert.Error(t, err)
}

func TestStatusLabels(t *testing.T) {
	b, err := json.Marshal(StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, `"In Progress"`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"Resolved"`), &s))
	assert.True(t, s.Resolved())
	assert.False(t, StatusOpen.Resolved())
	assert.False(t, StatusInProgress.Resolved())
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Open":        StatusOpen,
		"in progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		" resolved ":  StatusResolved,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("closed")
	assert.Error(t, err)
}

func TestSessionTypeRoundTrip(t *testing.T) {
	for _, st := range SessionTypes() {
		b, err := json.Marshal(st)
		require.NoError(t, err)
		var got SessionType
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, st, got)
	}

	got, err := ParseSessionType("non certified")
	require.NoError(t, err)
	assert.Equal(t, SessionNonCertified, got)

	_, err = ParseSessionType("")
	assert.Error(t, err)
}

func TestIssueGrounding(t *testing.T) {
	assert.True(t, Issue{Severity: SeverityCritical, Status: StatusOpen}.Grounding())
	assert.True(t, Issue{Severity: SeverityCritical, Status: StatusInProgress}.Grounding())
	assert.False(t, Issue{Severity: SeverityCritical, Status: StatusResolved}.Grounding())
	assert.False(t, Issue{Severity: SeverityHigh, Status: StatusOpen}.Grounding())
}

func TestSessionJSONOmitsReasonWhenNotLost(t *testing.T) {
	b, err := json.Marshal(Session{ID: "s", SessionType: SessionCertified})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "sessionLostReason")
	assert.Contains(t, string(b), `"sessionType":"Certified"`)
}
