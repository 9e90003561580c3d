package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → retry → logging → base. rec may be nil, in which case calls
// are not recorded.
func NewProvider(ctx context.Context, cfg Config, rec LLMEventRecorder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		mock := NewMockProvider()
		mock.Fallback = &MockResponse{Text: "(mock) 응답"}
		base = mock
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if rec != nil {
		base = WithLogging(base, cfg.Provider, rec)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv reads the environment and builds the provider. The
// returned Config is valid even when the error is not nil, so callers can
// still report which provider was expected.
func NewProviderFromEnv(ctx context.Context, rec LLMEventRecorder) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, rec)
	return p, cfg, err
}
