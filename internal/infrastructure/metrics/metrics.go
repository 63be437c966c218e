// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
)

const namespace = "fieldops"

// Metrics registro propio (no el global) con las series del pipeline de
// documentos y del servidor HTTP. Implementa documents.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	renderTotal      *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	emailTotal       *prometheus.CounterVec
	assetUnavailable *prometheus.CounterVec
	partialData      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registra todas las series.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "renders_total",
			Help:      "Documentos renderizados por tipo y modo (pdf | html).",
		}, []string{"kind", "mode"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "render_duration_seconds",
			Help:      "Duración del render por tipo y modo.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"kind", "mode"}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "emails_total",
			Help:      "Correos de documentos por resultado (sent | failed).",
		}, []string{"kind", "result"}),
		assetUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "assets_unavailable_total",
			Help:      "Imágenes omitidas por no poder obtenerse o decodificarse.",
		}, []string{"asset"}),
		partialData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "partial_data_total",
			Help:      "Datos secundarios omitidos durante el ensamblado.",
		}, []string{"field"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP procesadas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.renderTotal, m.renderDuration, m.emailTotal,
		m.assetUnavailable, m.partialData,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// ObserveRender documents.Recorder.
func (m *Metrics) ObserveRender(kind, mode string, d time.Duration) {
	m.renderTotal.WithLabelValues(kind, mode).Inc()
	m.renderDuration.WithLabelValues(kind, mode).Observe(d.Seconds())
}

// IncEmail documents.Recorder.
func (m *Metrics) IncEmail(kind, result string) {
	m.emailTotal.WithLabelValues(kind, result).Inc()
}

// IncAssetUnavailable documents.Recorder.
func (m *Metrics) IncAssetUnavailable(asset string) {
	m.assetUnavailable.WithLabelValues(asset).Inc()
}

// IncPartialData documents.Recorder.
func (m *Metrics) IncPartialData(field string) {
	m.partialData.WithLabelValues(field).Inc()
}

// Handler handler net/http de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests y colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware mide cada petición por ruta registrada (no por path crudo, para
// no disparar la cardinalidad con los ids).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

var _ documents.Recorder = (*Metrics)(nil)
