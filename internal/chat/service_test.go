package chat

import (
	"context"
	"testing"
	"time"

	"github.com/modelbridge/model-bridge/internal/platform/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompletionClient is a mock for the llm.CompletionClient interface.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (*llm.Completion, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Completion), args.Error(1)
}

func (m *MockCompletionClient) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestAskOllamaReturnsOllamaAnswer(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	question := "What is the capital of France?"
	mockOllama.On("Complete", mock.Anything, question).Return(&llm.Completion{
		Text:  "Paris.",
		Usage: &llm.Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16},
	}, nil)

	service := NewService(mockOllama, mockRunner)

	answer, err := service.AskOllama(context.Background(), question)
	require.NoError(t, err)

	assert.Equal(t, "Paris.", answer.Text)
	assert.Equal(t, 4, answer.CompletionTokens)
	assert.GreaterOrEqual(t, answer.Elapsed, time.Duration(0))

	// The other backend must never be consulted.
	mockRunner.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	mockOllama.AssertExpectations(t)
}

func TestAskRunnerReturnsRunnerAnswer(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockRunner.On("Complete", mock.Anything, "2+2?").Return(&llm.Completion{Text: "4"}, nil)

	service := NewService(mockOllama, mockRunner)

	answer, err := service.AskRunner(context.Background(), "2+2?")
	require.NoError(t, err)

	assert.Equal(t, "4", answer.Text)
	assert.Zero(t, answer.CompletionTokens)

	mockOllama.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	mockRunner.AssertExpectations(t)
}

func TestAskPropagatesBackendFailure(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockOllama.On("Complete", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	service := NewService(mockOllama, mockRunner)

	_, err := service.AskOllama(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ollama completion failed")
}

func TestAskTreatsEmptyAnswerAsFault(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockRunner.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: ""}, nil)

	service := NewService(mockOllama, mockRunner)

	_, err := service.AskRunner(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestHealthCheck(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockOllama.On("Health", mock.Anything).Return(nil)
	mockRunner.On("Health", mock.Anything).Return(nil)

	service := NewService(mockOllama, mockRunner)

	assert.NoError(t, service.HealthCheck(context.Background()))
	mockOllama.AssertExpectations(t)
	mockRunner.AssertExpectations(t)
}

func TestHealthCheckRunnerFailure(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockOllama.On("Health", mock.Anything).Return(nil)
	mockRunner.On("Health", mock.Anything).Return(assert.AnError)

	service := NewService(mockOllama, mockRunner)

	err := service.HealthCheck(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "runner health check failed")
}

func TestHealthReportsPerBackendStatus(t *testing.T) {
	mockOllama := new(MockCompletionClient)
	mockRunner := new(MockCompletionClient)

	mockOllama.On("Health", mock.Anything).Return(assert.AnError)
	mockRunner.On("Health", mock.Anything).Return(nil)

	service := NewService(mockOllama, mockRunner)

	status := service.Health(context.Background())
	assert.Error(t, status["ollama"])
	assert.NoError(t, status["runner"])
}
