package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Router(handler *Handler, readTimeout, writeTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Model Bridge v1.0.0",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Get("/health", handler.Health)

	chatGroup := app.Group("/chat")
	chatGroup.Post("/ollama", handler.ChatOllama)
	chatGroup.Post("/runner", handler.ChatRunner)

	return app
}
