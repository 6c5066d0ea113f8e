// Package analysis produces the maintenance chief's briefing for the owner
// dashboard by sending a summary of the SimLog collections to an LLM.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/teniciavanaalten/simlog/internal/llm"
	"github.com/teniciavanaalten/simlog/internal/records"
	"github.com/teniciavanaalten/simlog/internal/store"
)

// Messages returned instead of a briefing.
const (
	NotConfiguredMessage = "AI analysis is not configured. Set an LLM API key to enable it."
	FallbackMessage      = "Unable to generate AI analysis at this time."
)

// Purpose labels analysis requests in the LLM event log.
const Purpose = "analysis"

const maxTokens = 1024

// Analyzer asks the configured provider for a briefing. A nil provider
// means analysis is not configured.
type Analyzer struct {
	provider llm.Provider
	initErr  error
}

func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// NewAnalyzerFromEnv builds the provider from the environment. Missing
// credentials leave the analyzer unconfigured; any other setup error makes
// every report fall back.
func NewAnalyzerFromEnv(ctx context.Context, repo store.EventRepo) *Analyzer {
	provider, err := llm.NewProviderFromEnv(ctx, repo)
	switch {
	case err == nil:
		return NewAnalyzer(provider)
	case errors.Is(err, llm.ErrNotConfigured):
		if err != llm.ErrNotConfigured {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return NewAnalyzer(nil)
	default:
		return &Analyzer{initErr: err}
	}
}

// Configured reports whether a provider is set.
func (a *Analyzer) Configured() bool {
	return a != nil && (a.provider != nil || a.initErr != nil)
}

// Analyze returns the briefing text, NotConfiguredMessage when no provider
// is set, or FallbackMessage when the call fails.
func (a *Analyzer) Analyze(ctx context.Context, issues []records.Issue, maintenance []records.Maintenance, sessions []records.Session) string {
	_, text := a.Report(ctx, issues, maintenance, sessions)
	return text
}

// Report is Analyze keeping the structured brief. The brief is nil when
// text is NotConfiguredMessage or FallbackMessage. Failures are recorded
// by the provider's event log and echoed to stderr.
func (a *Analyzer) Report(ctx context.Context, issues []records.Issue, maintenance []records.Maintenance, sessions []records.Session) (*Brief, string) {
	if !a.Configured() {
		return nil, NotConfiguredMessage
	}
	brief, err := a.Brief(ctx, BuildContext(issues, maintenance, sessions))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: analysis failed: %v\n", err)
		return nil, FallbackMessage
	}
	return brief, brief.String()
}

// Brief requests the structured briefing for dc.
func (a *Analyzer) Brief(ctx context.Context, dc DataContext) (*Brief, error) {
	if !a.Configured() {
		return nil, llm.ErrNotConfigured
	}
	if a.initErr != nil {
		return nil, a.initErr
	}

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:    systemPrompt,
		Messages:  llm.UserMessage(userPrompt(dc)),
		Schema:    BriefSchema,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var b Brief
	if err := json.Unmarshal(resp.Content, &b); err != nil {
		return nil, fmt.Errorf("decode brief: %w", err)
	}
	if strings.TrimSpace(b.Readiness) == "" && len(b.Points) == 0 {
		return nil, errors.New("empty brief")
	}
	return &b, nil
}
