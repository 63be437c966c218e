package entity

import "time"

// Customer contraparte del documento.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}
