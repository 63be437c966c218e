package repository

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// UserRepository lectura de miembros del equipo (técnico asignado a un job).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
