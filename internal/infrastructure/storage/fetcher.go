package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain"
)

// maxImageBytes tope de descarga por imagen.
const maxImageBytes = 15 << 20

// HTTPFetcher descarga imágenes por URL (pública o firmada). Las descargas son
// secuenciales y sin reintentos; el timeout del cliente acota cada una.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher construye el fetcher con el timeout por imagen.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch devuelve los bytes de la imagen. Cualquier fallo se clasifica como
// domain.ErrAssetUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.WrapError(domain.ErrAssetUnavailable, "fetch", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrAssetUnavailable, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.WrapError(domain.ErrAssetUnavailable, "fetch", fmt.Errorf("status %d", resp.StatusCode))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, domain.WrapError(domain.ErrAssetUnavailable, "fetch", err)
	}
	if len(data) > maxImageBytes {
		return nil, domain.WrapError(domain.ErrAssetUnavailable, "fetch", fmt.Errorf("imagen supera %d bytes", maxImageBytes))
	}
	return data, nil
}
