package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend to use.
	// Values: "qianfan", "openai", "anthropic", "gemini", "mock"
	Provider string

	Qianfan   QianfanConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// DefaultConfig returns a Config with sensible defaults. Qianfan is the
// default provider because it is the only one with roster failover.
func DefaultConfig() Config {
	return Config{
		Provider: "qianfan",
		Qianfan: QianfanConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// ApplyEnv overlays FEYNLEARN_* environment variables onto the config.
// Set variables win over existing values.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("FEYNLEARN_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	if k := os.Getenv("FEYNLEARN_QIANFAN_API_KEY"); k != "" {
		c.Qianfan.APIKey = k
	}
	if u := os.Getenv("FEYNLEARN_QIANFAN_BASE_URL"); u != "" {
		c.Qianfan.BaseURL = u
	}

	if k := os.Getenv("FEYNLEARN_OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := os.Getenv("FEYNLEARN_OPENAI_MODEL"); m != "" {
		c.OpenAI.Model = m
	}
	if u := os.Getenv("FEYNLEARN_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}

	if k := os.Getenv("FEYNLEARN_ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := os.Getenv("FEYNLEARN_ANTHROPIC_MODEL"); m != "" {
		c.Anthropic.Model = m
	}

	if k := os.Getenv("FEYNLEARN_GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := os.Getenv("FEYNLEARN_GEMINI_MODEL"); m != "" {
		c.Gemini.Model = m
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "qianfan":
		if c.Qianfan.APIKey == "" {
			return fmt.Errorf("FEYNLEARN_QIANFAN_API_KEY is required for the qianfan provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("FEYNLEARN_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("FEYNLEARN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("FEYNLEARN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
