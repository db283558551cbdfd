package driven

import "context"

// CompletionService produces text completions for the conversational
// retrieval pipeline. Failures wrap domain.ErrCompletionUnavailable
// and are never substituted with a default answer; the service itself
// performs no retries.
//
// Implementations include:
//   - Ollama (local models)
//   - OpenAI (or any chat-completions-compatible endpoint)
type CompletionService interface {
	// Chat produces a completion from a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request, without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage is a single message in a chat request.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat generation.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
