package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teniciavanaalten/simlog/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"readiness":"Green","points":[]}`),
		Usage:   Usage{InputTokens: 300, OutputTokens: 40},
	})
	p := WithLogging(mock, "gemini", repo)

	ctx := WithPurpose(context.Background(), "analysis")
	_, err := p.Generate(ctx, Request{
		System:   "chief",
		Messages: UserMessage("open issues: none"),
		Schema:   readinessSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.Provider != "gemini" || e.Model != "mock" || e.Purpose != "analysis" || !e.Success {
		t.Fatalf("event = %+v", e)
	}
	if e.InputTokens != 300 || e.OutputTokens != 40 {
		t.Fatalf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]\nchief", "[user]\nopen issues: none", "[schema: test-readiness]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"readiness":"Green","points":[]}` {
		t.Fatalf("response body = %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}})
	p := WithLogging(mock, "openai", repo)

	if _, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Success || !strings.Contains(events[0].ErrorMessage, "503") {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Purpose != "unknown" {
		t.Fatalf("purpose = %q", events[0].Purpose)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider()
	if p := WithLogging(mock, "mock", nil); p != Provider(mock) {
		t.Fatal("expected the inner provider back")
	}
}

func TestNewProvider(t *testing.T) {
	repo := openEventRepo(t)

	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Retry: RetryConfig{MaxAttempts: 1}}, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}

	// An empty mock fails every call; the attempt is still audited.
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}
	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("events = %v, %v", events, err)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, repo); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestNewProviderFromEnv_NotConfigured(t *testing.T) {
	clearLLMEnv(t)
	_, err := NewProviderFromEnv(context.Background(), nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	t.Setenv("SIMLOG_LLM_PROVIDER", "anthropic")
	_, err = NewProviderFromEnv(context.Background(), nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("explicit provider without key: expected ErrNotConfigured, got %v", err)
	}
}

func TestNewProviderFromEnv_OpenAI(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
