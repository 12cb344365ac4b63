package api

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelbridge/model-bridge/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChatService is a mock for the ChatService interface.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) AskOllama(ctx context.Context, question string) (*chat.Answer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Answer), args.Error(1)
}

func (m *MockChatService) AskRunner(ctx context.Context, question string) (*chat.Answer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Answer), args.Error(1)
}

func (m *MockChatService) Health(ctx context.Context) map[string]error {
	args := m.Called(ctx)
	return args.Get(0).(map[string]error)
}

func postChat(t *testing.T, service ChatService, route, body string) (int, string) {
	t.Helper()

	app := Router(NewHandler(service), 0, 0)
	req := httptest.NewRequest("POST", route, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestChatOllamaRoundTrip(t *testing.T) {
	svc := new(MockChatService)
	svc.On("AskOllama", mock.Anything, "2+2?").Return(&chat.Answer{Text: "4", CompletionTokens: 1}, nil)

	app := Router(NewHandler(svc), 0, 0)
	req := httptest.NewRequest("POST", "/chat/ollama", strings.NewReader(`{"message": "2+2?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "4", string(body))
	assert.Equal(t, "1", resp.Header.Get(CompletionTokensHeader))

	svc.AssertNotCalled(t, "AskRunner", mock.Anything, mock.Anything)
}

func TestChatRunnerRoundTrip(t *testing.T) {
	svc := new(MockChatService)
	svc.On("AskRunner", mock.Anything, "2+2?").Return(&chat.Answer{Text: "four"}, nil)

	app := Router(NewHandler(svc), 0, 0)
	req := httptest.NewRequest("POST", "/chat/runner", strings.NewReader(`{"message": "2+2?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotEmpty(t, body)
	assert.Empty(t, resp.Header.Get(CompletionTokensHeader))

	svc.AssertNotCalled(t, "AskOllama", mock.Anything, mock.Anything)
}

func TestChatMissingMessageIsRejected(t *testing.T) {
	svc := new(MockChatService)

	status, body := postChat(t, svc, "/chat/ollama", `{}`)

	assert.Equal(t, 400, status)
	assert.Contains(t, body, "message is required")
	svc.AssertNotCalled(t, "AskOllama", mock.Anything, mock.Anything)
}

func TestChatBlankMessageIsRejected(t *testing.T) {
	svc := new(MockChatService)

	status, _ := postChat(t, svc, "/chat/runner", `{"message": "   "}`)

	assert.Equal(t, 400, status)
	svc.AssertNotCalled(t, "AskRunner", mock.Anything, mock.Anything)
}

func TestChatMalformedBodyIsRejected(t *testing.T) {
	svc := new(MockChatService)

	status, body := postChat(t, svc, "/chat/ollama", `{not json`)

	assert.Equal(t, 400, status)
	assert.Contains(t, body, "Invalid request payload")
}

func TestChatBackendFailureIsBadGateway(t *testing.T) {
	svc := new(MockChatService)
	svc.On("AskOllama", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	status, body := postChat(t, svc, "/chat/ollama", `{"message": "hello"}`)

	assert.Equal(t, 502, status)
	assert.Contains(t, body, "backend request failed")
}

func TestHealthHealthy(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Health", mock.Anything).Return(map[string]error{"ollama": nil, "runner": nil})

	app := Router(NewHandler(svc), 0, 0)
	req := httptest.NewRequest("GET", "/health", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestHealthDegraded(t *testing.T) {
	svc := new(MockChatService)
	svc.On("Health", mock.Anything).Return(map[string]error{"ollama": assert.AnError, "runner": nil})

	app := Router(NewHandler(svc), 0, 0)
	req := httptest.NewRequest("GET", "/health", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 503, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"ollama":"unhealthy"`)
}
