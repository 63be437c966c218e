package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.PhotoRepository = (*PhotoRepo)(nil)

// PhotoRepo lectura de job_photos.
type PhotoRepo struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository construye el adaptador.
func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// ListByJob fotos del job en orden de captura.
func (r *PhotoRepo) ListByJob(ctx context.Context, jobID string) ([]entity.Photo, error) {
	query := `
		SELECT id::text, job_id::text, COALESCE(photo_type, ''), COALESCE(caption, ''),
		       storage_path, created_at
		FROM job_photos
		WHERE job_id = $1
		ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job photos: %w", err)
	}
	photos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Photo, error) {
		var p entity.Photo
		err := row.Scan(&p.ID, &p.JobID, &p.Type, &p.Caption, &p.StoragePath, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan job photo: %w", err)
	}
	return photos, nil
}
