package repository

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// PhotoRepository lectura de fotos de un job, en orden de captura.
type PhotoRepository interface {
	ListByJob(ctx context.Context, jobID string) ([]entity.Photo, error)
}
