package repository

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura para el tenant y su configuración.
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetSettings devuelve (nil, nil) si el tenant no tiene fila de settings.
	GetSettings(ctx context.Context, companyID string) (*entity.CompanySettings, error)
	ListSocialLinks(ctx context.Context, companyID string) ([]entity.SocialLink, error)
}
