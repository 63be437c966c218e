package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents   documentService
	Metrics     *metrics.Metrics
	ServiceName string
	JWTSecret   string
	JWTIssuer   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token y un rol del equipo)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleTechnician),
	)

	// Documents
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Documents, deps.Log)
	documents.Post("/generate", documentHandler.Generate)
	documents.Get("/:type/:id/preview", documentHandler.Preview)
}
