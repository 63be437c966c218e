package repository

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// SignatureRepository lectura de firmas capturadas.
type SignatureRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Signature, error)
}
