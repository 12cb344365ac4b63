package llm

import "context"

// Usage tracks the token counts a backend reports alongside a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the unwrapped result of a single chat call. Usage is nil
// when the backend envelope did not carry token counts.
type Completion struct {
	Text  string
	Usage *Usage
}

// CompletionClient is responsible for generating a text response from a prompt.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
	Health(ctx context.Context) error
}
