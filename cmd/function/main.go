// Command function expone la misma API como HTTP Cloud Function.
// En local: FUNCTION_TARGET=GenerateDocument go run ./cmd/function
package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fieldops-api/internal/app"
	"github.com/jhoicas/fieldops-api/pkg/config"
	"github.com/jhoicas/fieldops-api/pkg/logger"
)

var fn = newLazyHandler(buildApp)

func init() {
	functions.HTTP("GenerateDocument", fn.ServeHTTP)
}

// buildApp arma el grafo completo de la API.
func buildApp(ctx context.Context) (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	l := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
	a, err := app.Build(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	return adaptor.FiberApp(a.Fiber), nil
}

// lazyHandler construye el handler en la primera petición. Solo se guarda un
// build exitoso: si falla (DB o storage caídos en el arranque) se responde 503
// y la siguiente petición vuelve a intentarlo.
type lazyHandler struct {
	mu      sync.Mutex
	build   func(context.Context) (http.Handler, error)
	handler http.Handler
}

func newLazyHandler(build func(context.Context) (http.Handler, error)) *lazyHandler {
	return &lazyHandler{build: build}
}

func (l *lazyHandler) get(ctx context.Context) (http.Handler, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handler != nil {
		return l.handler, nil
	}
	h, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.handler = h
	return h, nil
}

func (l *lazyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// El pool y los clientes de storage viven más que la petición que los crea.
	h, err := l.get(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("inicialización de la función")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"servicio no disponible","code":"UNAVAILABLE"}`))
		return
	}
	h.ServeHTTP(w, r)
}

func main() {
	port := "8080"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}
	if err := funcframework.Start(port); err != nil {
		log.Fatal().Err(err).Msg("funcframework.Start")
	}
}
