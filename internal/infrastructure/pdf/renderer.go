package pdf

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
)

// CanvasRenderer implementa documents.DocumentRenderer en modo canvas (PDF).
// La superficie no cambia el PDF: el adjunto del correo y la descarga son idénticos.
type CanvasRenderer struct {
	layout *Layout
	log    zerolog.Logger
}

// NewCanvasRenderer construye el renderizador PDF.
func NewCanvasRenderer(layout *Layout, log zerolog.Logger) *CanvasRenderer {
	return &CanvasRenderer{layout: layout, log: log}
}

// Render ejecuta el layout y serializa el resultado.
func (r *CanvasRenderer) Render(ctx context.Context, rec *documents.Record, _ documents.Surface) (*documents.Artifact, error) {
	canvas, err := r.layout.Render(ctx, rec)
	if err != nil {
		return nil, err
	}
	data, failed, err := Write(canvas)
	if err != nil {
		return nil, err
	}

	missing := append(canvas.Missing, failed...)
	for _, asset := range missing {
		r.log.Warn().
			Str("kind", string(rec.Kind)).
			Str("document_id", rec.Document.ID).
			Str("asset", asset).
			Msg("imagen no disponible, se omite")
	}
	return &documents.Artifact{
		ContentType:   "application/pdf",
		Data:          data,
		Pages:         len(canvas.Pages),
		Dropped:       canvas.Dropped,
		MissingAssets: missing,
	}, nil
}
