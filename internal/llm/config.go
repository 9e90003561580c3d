package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// MaxTokens caps every generated answer. Default: 2000.
	MaxTokens int

	// Timeout bounds one gateway call including retries. Zero means no
	// timeout.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: DefaultAnthropicModel
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "anthropic/claude-3-opus"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the configuration used when no environment
// overrides are present: Anthropic, one attempt per call, no timeout.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: DefaultAnthropicModel,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "anthropic/claude-3-opus",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens: 2000,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. When LINGUA_LLM_PROVIDER is unset the
// first provider with a key wins, Anthropic first.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Anthropic.APIKey = firstEnv("LINGUA_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("LINGUA_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("LINGUA_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("LINGUA_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	cfg.OpenAI.BaseURL = os.Getenv("LINGUA_OPENAI_BASE_URL")

	cfg.Gemini.APIKey = firstEnv("LINGUA_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("LINGUA_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	cfg.OpenRouter.APIKey = firstEnv("LINGUA_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	if m := os.Getenv("LINGUA_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if p := os.Getenv("LINGUA_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else {
		cfg.Provider = cfg.discoverProvider()
	}

	if v := os.Getenv("LINGUA_LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("LINGUA_LLM_MAX_TOKENS: want a positive integer, got %q", v)
		}
		cfg.MaxTokens = n
	}

	if v := os.Getenv("LINGUA_LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("LINGUA_LLM_MAX_ATTEMPTS: want a positive integer, got %q", v)
		}
		cfg.Retry.MaxAttempts = n
	}

	if v := os.Getenv("LINGUA_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("LINGUA_LLM_TIMEOUT: want a duration such as 30s, got %q", v)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// discoverProvider picks the first provider whose key is set, in the
// order Anthropic, OpenAI, Gemini, OpenRouter. Anthropic is returned when
// no key is present so that Validate names the expected variable.
func (c Config) discoverProvider() string {
	switch {
	case c.Anthropic.APIKey != "":
		return "anthropic"
	case c.OpenAI.APIKey != "":
		return "openai"
	case c.Gemini.APIKey != "":
		return "gemini"
	case c.OpenRouter.APIKey != "":
		return "openrouter"
	}
	return "anthropic"
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LINGUA_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ModelLabel returns the configured model for the selected provider.
func (c Config) ModelLabel() string {
	switch c.Provider {
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "openai":
		return resolveModel(c.OpenAI.Model, openaiModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	case "openrouter":
		return c.OpenRouter.Model
	}
	return c.Provider
}

// DisplayName is the vendor name shown in failure banners.
func (c Config) DisplayName() string {
	switch c.Provider {
	case "anthropic":
		return "Claude"
	case "openai":
		return "OpenAI"
	case "gemini":
		return "Gemini"
	case "openrouter":
		return "OpenRouter"
	}
	return "LLM"
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
