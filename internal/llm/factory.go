package llm

import (
	"context"
	"fmt"

	"github.com/teniciavanaalten/simlog/internal/store"
)

// NewProvider builds the provider named by cfg.Provider and wraps it:
// caller → timeout → retry → logging → backend.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, repo)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv resolves the configuration with LoadConfig and builds
// the provider. It returns an error wrapping ErrNotConfigured when no
// usable credential is set.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg, ok := LoadConfig()
	if !ok {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	return NewProvider(ctx, cfg, repo)
}
