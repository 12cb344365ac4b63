package api

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/modelbridge/model-bridge/internal/chat"
)

// CompletionTokensHeader carries the backend-reported completion token
// count when the envelope included one. The body stays plain text.
const CompletionTokensHeader = "X-Completion-Tokens"

// ChatService is the subset of the forwarding service the handlers need.
type ChatService interface {
	AskOllama(ctx context.Context, question string) (*chat.Answer, error)
	AskRunner(ctx context.Context, question string) (*chat.Answer, error)
	Health(ctx context.Context) map[string]error
}

type Handler struct {
	service ChatService
}

func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// ChatOllama forwards the message to the Ollama backend.
func (h *Handler) ChatOllama(c *fiber.Ctx) error {
	return h.chatWith(c, "ollama", h.service.AskOllama)
}

// ChatRunner forwards the message to the OpenAI-compatible model runner.
func (h *Handler) ChatRunner(c *fiber.Ctx) error {
	return h.chatWith(c, "runner", h.service.AskRunner)
}

func (h *Handler) chatWith(c *fiber.Ctx, backend string, ask func(context.Context, string) (*chat.Answer, error)) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	answer, err := ask(c.Context(), req.Message)
	if err != nil {
		log.Printf("%s chat request failed: %v", backend, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "backend request failed",
		})
	}

	if answer.CompletionTokens > 0 {
		c.Set(CompletionTokensHeader, strconv.Itoa(answer.CompletionTokens))
	}

	return c.SendString(answer.Text)
}

// Health reports per-backend connectivity.
func (h *Handler) Health(c *fiber.Ctx) error {
	response := HealthResponse{
		Status:   "healthy",
		Services: map[string]string{"api": "healthy"},
	}

	for name, err := range h.service.Health(c.Context()) {
		if err != nil {
			response.Services[name] = "unhealthy"
			response.Status = "degraded"
		} else {
			response.Services[name] = "healthy"
		}
	}

	if response.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}
	return c.JSON(response)
}
