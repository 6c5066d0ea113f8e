package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider and SIMLOG_LLM_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the analysis provider.
type Config struct {
	// Provider is one of the Provider* names.
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string

	// BaseURL points the client at an OpenAI-compatible API.
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls exponential backoff for transient failures.
// MaxAttempts counts the first try.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini with a single attempt and a 30 second
// deadline.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv applies SIMLOG_* variables over DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "SIMLOG_LLM_PROVIDER")

	setFromEnv(&cfg.Gemini.APIKey, "SIMLOG_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "SIMLOG_GEMINI_MODEL")

	setFromEnv(&cfg.Anthropic.APIKey, "SIMLOG_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "SIMLOG_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "SIMLOG_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "SIMLOG_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "SIMLOG_OPENAI_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "SIMLOG_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "SIMLOG_OPENROUTER_MODEL")

	if v := os.Getenv("SIMLOG_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "warning: ignoring SIMLOG_LLM_TIMEOUT=%q: want a positive duration like 30s\n", v)
		} else {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("SIMLOG_LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "warning: ignoring SIMLOG_LLM_MAX_ATTEMPTS=%q: want an integer >= 1\n", v)
		} else {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

// DiscoverConfig looks for a well-known API key when no SIMLOG provider is
// configured. API_KEY is taken as a Gemini key. Keys are probed in the
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	return discover(ConfigFromEnv())
}

func discover(cfg Config) (Config, bool) {
	for _, probe := range []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	} {
		if k := os.Getenv(probe.env); k != "" {
			cfg.Provider = probe.provider
			*probe.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// LoadConfig resolves the provider configuration from the environment.
// An explicit SIMLOG_LLM_PROVIDER wins; otherwise a SIMLOG key for the
// default provider, then DiscoverConfig. ok is false when nothing is set.
func LoadConfig() (cfg Config, ok bool) {
	cfg = ConfigFromEnv()
	if os.Getenv("SIMLOG_LLM_PROVIDER") != "" || cfg.Validate() == nil {
		return cfg, true
	}
	return discover(cfg)
}

// Validate reports whether the selected provider has its API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("the %s provider needs an API key (set SIMLOG_%s_API_KEY)", c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
