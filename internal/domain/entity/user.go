package entity

import "time"

// Roles válidos para User (viajan en el claim "role" del JWT).
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// User miembro del equipo de una Company; en los jobs es el técnico asignado.
type User struct {
	ID        string
	CompanyID string
	Email     string
	Name      string
	Phone     string
	Role      string // owner, admin, technician
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName nombre a imprimir; cae al email si no hay nombre.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
