package generator

import "context"

// LLMClient abstracts the completion capability so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures an OpenAI-compatible client. Provider names the
// endpoint in error messages.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
