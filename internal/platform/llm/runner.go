package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// RunnerClient talks to an OpenAI-compatible model runner, such as Docker
// Model Runner or any local server speaking the chat completions protocol.
type RunnerClient struct {
	client *openai.Client
	model  string
}

var _ CompletionClient = (*RunnerClient)(nil)

// RunnerConfig contains model runner client configuration
type RunnerConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewRunnerClient creates a new client for an OpenAI-compatible endpoint.
func NewRunnerClient(config RunnerConfig) (*RunnerClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("runner base URL is required")
	}
	if config.Model == "" {
		config.Model = "ai/llama3.2"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &RunnerClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
	}, nil
}

// Complete sends a prompt as a single user message and returns the answer.
func (c *RunnerClient) Complete(ctx context.Context, prompt string) (*Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("runner chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("received no choices from runner")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return nil, fmt.Errorf("received an empty completion from runner")
	}

	return &Completion{
		Text: text,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Health checks runner service availability via the models endpoint.
func (c *RunnerClient) Health(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("runner service health check failed: %w", err)
	}
	return nil
}
