package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// ModelAdapter adapts a CompletionClient to the LangChainGo llms.Model
// interface so callers can stay backend-agnostic.
type ModelAdapter struct {
	client CompletionClient
}

// Ensure ModelAdapter implements llms.Model
var _ llms.Model = (*ModelAdapter)(nil)

// NewModelAdapter creates a new adapter around a CompletionClient
func NewModelAdapter(client CompletionClient) *ModelAdapter {
	return &ModelAdapter{client: client}
}

// Call implements the deprecated Call method for backwards compatibility
func (a *ModelAdapter) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	completion, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return completion.Text, nil
}

// GenerateContent implements the main LangChainGo interface. Token counts
// reported by the backend are surfaced through GenerationInfo.
func (a *ModelAdapter) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	// Flatten the messages to a single prompt; the backends here only
	// accept one-shot questions.
	var prompt string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if textPart, ok := part.(llms.TextContent); ok {
				prompt += textPart.Text
			}
		}
	}

	completion, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	choice := &llms.ContentChoice{
		Content: completion.Text,
	}
	if completion.Usage != nil {
		choice.GenerationInfo = map[string]any{
			"PromptTokens":     completion.Usage.PromptTokens,
			"CompletionTokens": completion.Usage.CompletionTokens,
			"TotalTokens":      completion.Usage.TotalTokens,
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{choice},
	}, nil
}
