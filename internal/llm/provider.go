package llm

import "context"

// Provider is the core abstraction for LLM interaction. Consumers send a
// chat-style request and receive the model's raw text output; all parsing
// of that text belongs to the caller.
type Provider interface {
	// Generate sends the request to the backend and returns its output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider currently targets.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation. For single-turn generation (the common
	// case here) this contains one user message.
	Messages []Message

	// Temperature controls randomness. When zero the provider default
	// applies.
	Temperature float64

	// MaxTokens bounds the response length. Zero means provider default.
	MaxTokens int
}

// Message is a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated text.
	Content string

	// Model is the model that actually served the request. For the roster
	// provider this may differ from the preferred model after a failover.
	Model string

	// Usage reports token consumption when the backend provides it.
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
