package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging when a sink is given. kv persists the Qianfan roster cursor and
// may be nil.
func NewProvider(ctx context.Context, cfg Config, kv KeyValue, sink EventSink) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "qianfan":
		base, err = NewQianfanProvider(cfg.Qianfan, NewRoster(nil, kv))
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if sink == nil {
		return base, nil
	}
	return WithLogging(base, sink), nil
}
