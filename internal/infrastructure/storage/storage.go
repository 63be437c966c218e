// Package storage resuelve rutas de imágenes en object storage (S3 o GCS) y
// descarga sus bytes para los renderizadores.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/pkg/config"
)

// NewResolver elige la implementación según STORAGE_PROVIDER. El io.Closer
// devuelto libera recursos del proveedor (no-op para S3).
func NewResolver(ctx context.Context, cfg config.StorageConfig) (documents.URLResolver, io.Closer, error) {
	switch cfg.Provider {
	case "s3":
		r, err := NewS3Resolver(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return r, nopCloser{}, nil
	case "gcs":
		r, err := NewGCSResolver(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	}
	return nil, nil, fmt.Errorf("storage: proveedor desconocido %q", cfg.Provider)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// objectKey normaliza la ruta guardada en la DB ("/logos/a.png" → "logos/a.png").
func objectKey(path string) string {
	return strings.TrimLeft(strings.TrimSpace(path), "/")
}
