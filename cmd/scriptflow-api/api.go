// Package main provides the ScriptFlow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/services"
	"github.com/atechlabs/scriptflow/pkg/session"
	"github.com/atechlabs/scriptflow/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	sessions    session.Store
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	sessions session.Store,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		sessions:    sessions,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	editor := services.NewEditor(a.persistence, a.logger)
	placeholders := services.NewPlaceholders(a.persistence, a.logger)

	handlers := web.NewAPIHandlers(editor, placeholders, a.sessions, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ScriptFlow API")
	})

	n := app.Group("/nodes")
	n.Get("/", handlers.GetNodes)
	n.Post("/", handlers.CreateNode)
	n.Post("/import", handlers.ImportNodes)
	n.Get("/:nodeId", handlers.GetNode)
	n.Patch("/:nodeId", handlers.UpdateNode)
	n.Delete("/:nodeId", handlers.DeleteNode)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Delete("/:name", handlers.DeleteWorkflow)

	app.Get("/layout", handlers.GetLayout)

	s := app.Group("/sessions")
	s.Post("/", handlers.CreateSession)
	s.Get("/:id", handlers.GetSession)
	s.Delete("/:id", handlers.DeleteSession)
	s.Post("/:id/select-root", handlers.SelectRoot)
	s.Post("/:id/navigate", handlers.Navigate)
	s.Post("/:id/back", handlers.Back)
	s.Post("/:id/reset", handlers.Reset)
	s.Post("/:id/jump", handlers.Jump)
	s.Get("/:id/script", handlers.GetSessionScript)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
