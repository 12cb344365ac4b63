package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/modelbridge/model-bridge/internal/platform/llm"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Service forwards plain-text questions to one of two chat backends and
// unwraps the answer. It holds no per-request state; every call is
// independent.
type Service struct {
	ollamaClient llm.CompletionClient
	runnerClient llm.CompletionClient
	ollamaModel  llms.Model
	runnerModel  llms.Model
}

// Answer is the unwrapped backend response.
type Answer struct {
	Text             string
	CompletionTokens int // 0 when the backend did not report usage
	Elapsed          time.Duration
}

// NewService creates a forwarding service over the two backend clients.
func NewService(ollamaClient, runnerClient llm.CompletionClient) *Service {
	return &Service{
		ollamaClient: ollamaClient,
		runnerClient: runnerClient,
		ollamaModel:  llm.NewModelAdapter(ollamaClient),
		runnerModel:  llm.NewModelAdapter(runnerClient),
	}
}

// AskOllama forwards a question to the Ollama backend.
func (s *Service) AskOllama(ctx context.Context, question string) (*Answer, error) {
	return s.ask(ctx, "ollama", s.ollamaModel, question)
}

// AskRunner forwards a question to the OpenAI-compatible model runner.
func (s *Service) AskRunner(ctx context.Context, question string) (*Answer, error) {
	return s.ask(ctx, "runner", s.runnerModel, question)
}

func (s *Service) ask(ctx context.Context, backend string, model llms.Model, question string) (*Answer, error) {
	start := time.Now()

	resp, err := model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, question),
	})
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", backend, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return nil, fmt.Errorf("%s returned an empty response", backend)
	}

	answer := &Answer{
		Text:    resp.Choices[0].Content,
		Elapsed: time.Since(start),
	}
	if tokens, ok := resp.Choices[0].GenerationInfo["CompletionTokens"].(int); ok {
		answer.CompletionTokens = tokens
	}

	log.Printf("%s answered in %s (%d chars)", backend, answer.Elapsed.Round(time.Millisecond), len(answer.Text))
	return answer, nil
}

// Health pings both backends and reports per-backend status.
func (s *Service) Health(ctx context.Context) map[string]error {
	return map[string]error{
		"ollama": s.ollamaClient.Health(ctx),
		"runner": s.runnerClient.Health(ctx),
	}
}

// HealthCheck verifies connectivity to both backends.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.ollamaClient.Health(ctx); err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	if err := s.runnerClient.Health(ctx); err != nil {
		return fmt.Errorf("runner health check failed: %w", err)
	}
	return nil
}
