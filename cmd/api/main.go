// Model Bridge - forwards chat prompts to two LLM backends
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelbridge/model-bridge/internal/api"
	"github.com/modelbridge/model-bridge/internal/chat"
	"github.com/modelbridge/model-bridge/internal/config"
	"github.com/modelbridge/model-bridge/internal/platform/llm"
)

const (
	serviceName    = "model-bridge"
	serviceVersion = "v1.0.0"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Initializing Ollama client at: %s (model: %s)", cfg.Ollama.BaseURL, cfg.Ollama.Model)
	ollamaClient := llm.NewOllamaClient(llm.OllamaConfig{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.Model,
	})

	log.Printf("Initializing model runner client at: %s (model: %s)", cfg.Runner.BaseURL, cfg.Runner.Model)
	runnerClient, err := llm.NewRunnerClient(llm.RunnerConfig{
		BaseURL: cfg.Runner.BaseURL,
		APIKey:  cfg.Runner.APIKey,
		Model:   cfg.Runner.Model,
	})
	if err != nil {
		log.Fatalf("Failed to create model runner client: %v", err)
	}

	chatService := chat.NewService(ollamaClient, runnerClient)

	// Health check before startup
	log.Println("Performing health checks...")
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := chatService.HealthCheck(healthCtx); err != nil {
		log.Printf("Warning: Health check failed: %v", err)
		log.Println("Continuing startup, but chat requests may fail until both backends are up")
	} else {
		log.Println("All health checks passed")
	}
	healthCancel()

	app := api.Router(api.NewHandler(chatService), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	// Start server asynchronously
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting %s %s on %s", serviceName, serviceVersion, addr)
		log.Printf("Backends: ollama=%s runner=%s", cfg.Ollama.BaseURL, cfg.Runner.BaseURL)

		if err := app.Listen(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
