package ai

// Message is one chat-completion turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single generation. Zero values fall back to provider defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Provider is an LLM completion endpoint: messages in, text out, fallible.
type Provider interface {
	Generate(messages []Message, opts Options) (string, error)
}
