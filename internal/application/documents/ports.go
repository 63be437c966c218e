package documents

import (
	"context"
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// Surface superficie para la que se renderiza (afecta la visibilidad de enlaces sociales
// y el texto introductorio del correo).
type Surface int

const (
	SurfaceDownload Surface = iota
	SurfaceEmail
)

// Record snapshot ensamblado de un documento con todo lo que necesitan los renderizadores.
// Company, Customer, Assignee y Signature pueden ser nil (datos parciales).
type Record struct {
	Kind        entity.DocumentKind
	Document    *entity.Document
	Items       []entity.LineItem
	Company     *entity.Company
	Customer    *entity.Customer
	Assignee    *entity.User
	Signature   *entity.Signature
	Photos      []entity.Photo
	SocialLinks []entity.SocialLink
	Preferences entity.RenderPreferences
	LogoURL     string
	Totals      entity.Totals
}

// CompanyName nombre del tenant o vacío.
func (r *Record) CompanyName() string {
	if r.Company == nil {
		return ""
	}
	return r.Company.Name
}

// CustomerName nombre del cliente o vacío.
func (r *Record) CustomerName() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.Name
}

// VisiblePhotos fotos que se imprimen según la preferencia del tipo de documento.
func (r *Record) VisiblePhotos() []entity.Photo {
	if !r.Preferences.PhotosEnabled(r.Kind) {
		return nil
	}
	return r.Photos
}

// Artifact resultado de un renderizador.
type Artifact struct {
	ContentType   string
	Data          []byte
	Pages         int      // solo PDF
	Dropped       int      // filas/líneas descartadas por falta de espacio (modo truncate)
	MissingAssets []string // imágenes omitidas: logo, signature, photo, social_icon
}

// DocumentRenderer contrato común de CanvasRenderer (PDF) y MarkupRenderer (HTML).
type DocumentRenderer interface {
	Render(ctx context.Context, rec *Record, surface Surface) (*Artifact, error)
}

// URLResolver traduce rutas de storage a URLs descargables.
type URLResolver interface {
	// PublicURL bucket público (logos, iconos sociales).
	PublicURL(path string) string
	// SignedURL bucket privado (fotos de jobs) con validez ttl.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// Attachment adjunto binario del correo.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email mensaje saliente.
type Email struct {
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// MailSender puerto de envío de correo.
type MailSender interface {
	Send(ctx context.Context, msg Email) error
}

// Recorder métricas del pipeline; la implementación vive en infrastructure/metrics.
type Recorder interface {
	ObserveRender(kind, mode string, d time.Duration)
	IncEmail(kind, result string)
	IncAssetUnavailable(asset string)
	IncPartialData(field string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(string, string, time.Duration) {}
func (nopRecorder) IncEmail(string, string)                     {}
func (nopRecorder) IncAssetUnavailable(string)                  {}
func (nopRecorder) IncPartialData(string)                       {}
