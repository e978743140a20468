package llm

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/store"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// ProviderConfig is what every provider needs.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	ProviderConfig

	Retry RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures exponential backoff.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.5-flash",
}

// standardKeys are the vendor env vars probed when QUIZDECK_LLM_PROVIDER
// is not set, in priority order.
var standardKeys = []struct{ provider, env string }{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DefaultRetry is three attempts starting at one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Second, MaxWait: 10 * time.Second, Multiplier: 2}
}

// ConfigFromEnv reads QUIZDECK_LLM_PROVIDER, QUIZDECK_LLM_API_KEY,
// QUIZDECK_LLM_MODEL, QUIZDECK_LLM_BASE_URL and QUIZDECK_LLM_TIMEOUT_SECS.
// Without an explicit provider it falls back to the first vendor key found
// in the environment. ok is false when no provider could be chosen.
func ConfigFromEnv() (cfg Config, ok bool) {
	cfg = Config{Retry: DefaultRetry(), Timeout: 60 * time.Second}

	cfg.Provider = os.Getenv("QUIZDECK_LLM_PROVIDER")
	cfg.APIKey = os.Getenv("QUIZDECK_LLM_API_KEY")
	if cfg.Provider == "" {
		for _, k := range standardKeys {
			if v := os.Getenv(k.env); v != "" {
				cfg.Provider = k.provider
				if cfg.APIKey == "" {
					cfg.APIKey = v
				}
				break
			}
		}
	} else if cfg.APIKey == "" {
		for _, k := range standardKeys {
			if k.provider == cfg.Provider {
				cfg.APIKey = os.Getenv(k.env)
			}
		}
	}
	if cfg.Provider == "" {
		return Config{}, false
	}

	cfg.Model = os.Getenv("QUIZDECK_LLM_MODEL")
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	cfg.BaseURL = os.Getenv("QUIZDECK_LLM_BASE_URL")
	if v := os.Getenv("QUIZDECK_LLM_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg, true
}

// Validate checks the provider name and key.
func (c Config) Validate() error {
	if _, known := defaultModels[c.Provider]; !known {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("QUIZDECK_LLM_API_KEY is required for the %s provider", c.Provider)
	}
	return nil
}

// New builds the configured provider wrapped as caller -> timeout ->
// retry -> recorder -> provider. repo and log may be nil.
func New(ctx context.Context, cfg Config, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropic(cfg.ProviderConfig)
	case ProviderOpenAI:
		base, err = NewOpenAI(cfg.ProviderConfig)
	case ProviderOpenRouter:
		base, err = NewOpenRouter(cfg.ProviderConfig)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.ProviderConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := WithRecorder(base, cfg.Provider, repo, log)
	p = WithRetry(p, cfg.Retry, log)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewFromEnv is New with ConfigFromEnv.
func NewFromEnv(ctx context.Context, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		return nil, fmt.Errorf("no LLM provider configured: set QUIZDECK_LLM_PROVIDER and QUIZDECK_LLM_API_KEY")
	}
	return New(ctx, cfg, repo, log)
}
