package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/pkg/config"
)

// GCSResolver resuelve rutas de Cloud Storage a URLs descargables.
type GCSResolver struct {
	client        *storage.Client // nil cuando se firma con clave explícita
	accessID      string
	privateKey    []byte
	publicBucket  string
	privateBucket string
	publicBase    string
}

// NewGCSResolver firma con la clave de service account configurada; sin ella
// crea un cliente y deja que la librería detecte las credenciales del entorno.
func NewGCSResolver(ctx context.Context, cfg config.StorageConfig) (*GCSResolver, error) {
	r := &GCSResolver{
		accessID:      cfg.GCSAccessID,
		privateKey:    []byte(cfg.GCSPrivateKey),
		publicBucket:  cfg.PublicBucket,
		privateBucket: cfg.PrivateBucket,
		publicBase:    strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
	if r.publicBase == "" {
		r.publicBase = "https://storage.googleapis.com/" + cfg.PublicBucket
	}
	if r.accessID == "" || len(r.privateKey) == 0 {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs: crear cliente: %w", err)
		}
		r.client = client
	}
	return r, nil
}

// PublicURL URL directa del objeto en el bucket público.
func (r *GCSResolver) PublicURL(path string) string {
	return r.publicBase + "/" + objectKey(path)
}

// SignedURL URL firmada V4 de lectura sobre el bucket privado.
func (r *GCSResolver) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	}
	key := objectKey(path)
	if r.client == nil {
		opts.GoogleAccessID = r.accessID
		opts.PrivateKey = r.privateKey
		u, err := storage.SignedURL(r.privateBucket, key, opts)
		if err != nil {
			return "", fmt.Errorf("gcs: firmar %s: %w", key, err)
		}
		return u, nil
	}
	u, err := r.client.Bucket(r.privateBucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("gcs: firmar %s: %w", key, err)
	}
	return u, nil
}

// Close libera el cliente, si existe.
func (r *GCSResolver) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

var _ documents.URLResolver = (*GCSResolver)(nil)
