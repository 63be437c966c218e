package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID       string
	Name     string
	LogoPath string // ruta en el bucket público de logos
	Address  Address
	Phone    string
	Email    string
	Website  string

	// Política de cobro.
	DefaultPaymentMethod string           // cash | check | card | bank_transfer | any
	PaymentTermsDays     *int             // nil = no configurado
	LateFeePercentage    *decimal.Decimal // nil = no configurado

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SocialLink enlace a red social del tenant, con visibilidad por superficie.
type SocialLink struct {
	ID            string
	CompanyID     string
	Platform      string
	URL           string
	IconPath      string // opcional; bucket público
	IconURL       string // resuelto por el ensamblador
	ShowOnInvoice bool
	ShowOnQuote   bool
	ShowOnJob     bool
	ShowOnEmail   bool
	DisplayOrder  int
}

// VisibleOn informa si el enlace se muestra para el tipo de documento.
// En la superficie de correo además se exige ShowOnEmail.
func (s SocialLink) VisibleOn(kind DocumentKind, email bool) bool {
	if email && !s.ShowOnEmail {
		return false
	}
	switch kind {
	case KindInvoice:
		return s.ShowOnInvoice
	case KindQuote:
		return s.ShowOnQuote
	case KindJob:
		return s.ShowOnJob
	}
	return false
}
