package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.SignatureRepository = (*SignatureRepo)(nil)

// SignatureRepo lectura de la tabla signatures.
type SignatureRepo struct {
	pool *pgxpool.Pool
}

// NewSignatureRepository construye el adaptador.
func NewSignatureRepository(pool *pgxpool.Pool) *SignatureRepo {
	return &SignatureRepo{pool: pool}
}

// GetByID obtiene la firma; (nil, nil) si no existe.
func (r *SignatureRepo) GetByID(ctx context.Context, id string) (*entity.Signature, error) {
	query := `
		SELECT id::text, COALESCE(signer_name, ''), signed_at, COALESCE(signature_data, '')
		FROM signatures WHERE id = $1`
	var s entity.Signature
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.SignerName, &s.SignedAt, &s.ImageData)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get signature: %w", err)
	}
	return &s, nil
}
