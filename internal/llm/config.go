package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. It is filled from the llm.*
// configuration keys.
type Config struct {
	Provider   string           `mapstructure:"provider"`
	Timeout    time.Duration    `mapstructure:"timeout"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// BaseURL points the client at an OpenAI-compatible endpoint.
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig controls exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Timeout:    60 * time.Second,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// vendorKeys are the API key variables the vendors' own tools read, in
// the order Discover tries them.
var vendorKeys = []struct {
	env      string
	provider string
}{
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Discover fills in a missing API key for the configured provider from the
// vendor's standard environment variable. When the configured provider
// has no key anywhere, the first vendor key found selects the provider.
func (c Config) Discover() Config {
	if c.apiKey() != "" || c.Provider == ProviderMock {
		return c
	}
	for _, vk := range vendorKeys {
		if vk.provider == c.Provider {
			if k := os.Getenv(vk.env); k != "" {
				return c.withKey(vk.provider, k)
			}
		}
	}
	for _, vk := range vendorKeys {
		if k := os.Getenv(vk.env); k != "" {
			return c.withKey(vk.provider, k)
		}
	}
	return c
}

func (c Config) withKey(provider, key string) Config {
	c.Provider = provider
	switch provider {
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
	return c
}

func (c Config) apiKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.apiKey() == "" {
			return fmt.Errorf("no API key for the %s provider: set RANI_LLM_%s_API_KEY", c.Provider, strings.ToUpper(c.Provider))
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider %q", c.Provider)
}
