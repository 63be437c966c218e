// Package app arma el grafo de dependencias que comparten cmd/api y cmd/function.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldops-api/docs"
	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/html"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/mail"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/metrics"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/fieldops-api/internal/interfaces/http"
	"github.com/jhoicas/fieldops-api/pkg/config"
	"github.com/jhoicas/fieldops-api/pkg/logger"
)

// App servidor listo para escuchar más los recursos a liberar al apagar.
type App struct {
	Fiber *fiber.App

	pool    *pgxpool.Pool
	storage io.Closer
}

// Build conecta PostgreSQL y storage y registra las rutas.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	resolver, closer, err := storage.NewResolver(ctx, cfg.Storage)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	m := metrics.New()
	generate, err := newGenerateUseCase(cfg, log, pool, resolver, m)
	if err != nil {
		_ = closer.Close()
		pool.Close()
		return nil, err
	}

	return &App{
		Fiber: NewHTTP(cfg, httpRouter.RouterDeps{
			Documents:   generate,
			Metrics:     m,
			ServiceName: cfg.App.Name,
			JWTSecret:   cfg.JWT.Secret,
			JWTIssuer:   cfg.JWT.Issuer,
			Log:         log.Component("http"),
		}),
		pool:    pool,
		storage: closer,
	}, nil
}

func newGenerateUseCase(
	cfg *config.Config,
	log *logger.Logger,
	pool *pgxpool.Pool,
	resolver documents.URLResolver,
	m *metrics.Metrics,
) (*documents.GenerateUseCase, error) {
	docRepo := postgres.NewDocumentRepository(pool)
	assembler := documents.NewAssembler(documents.Repositories{
		Documents:  docRepo,
		Companies:  postgres.NewCompanyRepository(pool),
		Customers:  postgres.NewCustomerRepository(pool),
		Users:      postgres.NewUserRepository(pool),
		Signatures: postgres.NewSignatureRepository(pool),
		Photos:     postgres.NewPhotoRepository(pool),
	}, resolver, m, log.Component("assembler"))

	layout := pdf.NewLayout(storage.NewHTTPFetcher(cfg.Storage.FetchTimeout), pdf.Options{
		Overflow: pdf.ParseOverflow(cfg.Render.Overflow),
	})
	canvas := pdf.NewCanvasRenderer(layout, log.Component("pdf"))

	markup, err := html.NewMarkupRenderer(html.Options{
		Locale:         cfg.Render.Locale,
		CurrencySymbol: cfg.Render.CurrencySymbol,
	})
	if err != nil {
		return nil, fmt.Errorf("plantilla HTML: %w", err)
	}

	sender := mail.NewSMTPSender(cfg.SMTP, log.Component("mail"))

	return documents.NewGenerateUseCase(
		assembler, canvas, markup, sender, docRepo, m, log.Component("documents"),
	), nil
}

// NewHTTP crea la aplicación Fiber con middlewares, /docs y las rutas.
func NewHTTP(cfg *config.Config, deps httpRouter.RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	app.Use(recover.New())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}

	// Swagger UI: http://localhost:<port>/docs. El documento viene del paquete
	// generado por swag, así que la Cloud Function no necesita el archivo.
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "FieldOps Documents API",
	}))

	httpRouter.Router(app, deps)
	return app
}

// Close libera el pool y el cliente de storage.
func (a *App) Close() {
	if a.storage != nil {
		_ = a.storage.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
