package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/store"
)

// NewProvider builds the configured provider. Calls go through retry,
// then recording, then the vendor client, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger logrus.FieldLogger) (Provider, error) {
	cfg = cfg.Discover()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	logger.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"model":    base.ModelID(),
	}).Debug("llm provider ready")
	return WithRetry(WithRecording(base, cfg.Provider, events, logger), cfg.Retry), nil
}
