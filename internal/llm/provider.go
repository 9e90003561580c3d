package llm

import "context"

// Provider sends a single prompt to a hosted model and returns its text.
type Provider interface {
	// Generate sends req to the model. A nil error means the model answered;
	// the answer text may still be empty.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is an optional system prompt.
	System string

	// Messages is the conversation. Lesson calls are single-turn, so this
	// holds one user message.
	Messages []Message

	// MaxTokens caps the length of the answer.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
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

// UserPrompt builds a single-turn request.
func UserPrompt(text string, maxTokens int) Request {
	return Request{
		Messages:  []Message{{Role: RoleUser, Content: text}},
		MaxTokens: maxTokens,
	}
}

// Response holds the model's answer.
type Response struct {
	// Text is the first text block of the answer.
	Text string

	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
