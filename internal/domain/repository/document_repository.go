package repository

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// DocumentRepository puerto de lectura de quotes, invoices y jobs con sus líneas.
// GetByID devuelve (nil, nil) si el documento no existe.
type DocumentRepository interface {
	GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)
	ListLineItems(ctx context.Context, kind entity.DocumentKind, documentID string) ([]entity.LineItem, error)
	// MarkSent pasa el documento de draft a sent. Es condicional sobre el estado
	// actual: devuelve false si ya no estaba en draft (no hubo transición).
	MarkSent(ctx context.Context, kind entity.DocumentKind, id string) (bool, error)
}
