package entity

import (
	"fmt"
	"strings"
)

// Cuerpos de correo por defecto (email_*_body). Aceptan los marcadores
// {customer_name}, {company_name} y {document_number}.
const (
	DefaultEmailQuoteBody   = "Hi {customer_name},\n\nPlease find attached quote #{document_number} from {company_name}. Let us know if you have any questions, we look forward to working with you."
	DefaultEmailInvoiceBody = "Hi {customer_name},\n\nPlease find attached invoice #{document_number} from {company_name}. Thank you for your business."
	DefaultEmailJobBody     = "Hi {customer_name},\n\nPlease find attached the summary for job #{document_number} completed by {company_name}."
	DefaultFooterText       = "Thank you for your business!"
)

// CompanySettings fila de company_settings tal como se guarda: cada columna es
// opcional y nil significa "usar el valor por defecto".
type CompanySettings struct {
	CompanyID              string
	PDFShowLogo            *bool
	PDFShowNotes           *bool
	PDFShowSignature       *bool
	PDFShowLineItemDetails *bool
	PDFShowJobPhotos       *bool
	PDFShowQuotePhotos     *bool
	PDFShowInvoicePhotos   *bool
	PDFTermsConditions     *string
	PDFFooterText          *string
	EmailJobBody           *string
	EmailQuoteBody         *string
	EmailInvoiceBody       *string
}

// RenderPreferences preferencias resueltas que reciben ambos renderizadores.
type RenderPreferences struct {
	ShowLogo            bool
	ShowNotes           bool
	ShowSignature       bool
	ShowLineItemDetails bool
	ShowJobPhotos       bool
	ShowQuotePhotos     bool
	ShowInvoicePhotos   bool
	TermsConditions     string // vacío = sin bloque de términos
	FooterText          string // vacío = DefaultFooterText
	EmailJobBody        string
	EmailQuoteBody      string
	EmailInvoiceBody    string
}

// DefaultRenderPreferences valores por defecto de cada preferencia.
func DefaultRenderPreferences() RenderPreferences {
	return RenderPreferences{
		ShowLogo:            true,
		ShowNotes:           true,
		ShowSignature:       true,
		ShowLineItemDetails: true,
		ShowJobPhotos:       true,
		ShowQuotePhotos:     false,
		ShowInvoicePhotos:   false,
		EmailJobBody:        DefaultEmailJobBody,
		EmailQuoteBody:      DefaultEmailQuoteBody,
		EmailInvoiceBody:    DefaultEmailInvoiceBody,
	}
}

// Preferences combina la fila guardada con los valores por defecto.
// Un receptor nil (tenant sin fila de settings) devuelve los defaults.
func (s *CompanySettings) Preferences() RenderPreferences {
	p := DefaultRenderPreferences()
	if s == nil {
		return p
	}
	setBool(&p.ShowLogo, s.PDFShowLogo)
	setBool(&p.ShowNotes, s.PDFShowNotes)
	setBool(&p.ShowSignature, s.PDFShowSignature)
	setBool(&p.ShowLineItemDetails, s.PDFShowLineItemDetails)
	setBool(&p.ShowJobPhotos, s.PDFShowJobPhotos)
	setBool(&p.ShowQuotePhotos, s.PDFShowQuotePhotos)
	setBool(&p.ShowInvoicePhotos, s.PDFShowInvoicePhotos)
	setText(&p.TermsConditions, s.PDFTermsConditions)
	setText(&p.FooterText, s.PDFFooterText)
	setText(&p.EmailJobBody, s.EmailJobBody)
	setText(&p.EmailQuoteBody, s.EmailQuoteBody)
	setText(&p.EmailInvoiceBody, s.EmailInvoiceBody)
	return p
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// setText ignora cadenas en blanco: un texto vacío en la DB equivale a null.
func setText(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}

// PhotosEnabled gate de fotos por tipo de documento.
func (p RenderPreferences) PhotosEnabled(kind DocumentKind) bool {
	switch kind {
	case KindJob:
		return p.ShowJobPhotos
	case KindQuote:
		return p.ShowQuotePhotos
	case KindInvoice:
		return p.ShowInvoicePhotos
	}
	return false
}

// EmailBody plantilla de cuerpo de correo del tipo de documento.
func (p RenderPreferences) EmailBody(kind DocumentKind) string {
	switch kind {
	case KindQuote:
		return p.EmailQuoteBody
	case KindInvoice:
		return p.EmailInvoiceBody
	default:
		return p.EmailJobBody
	}
}

// Footer texto del pie de página.
func (p RenderPreferences) Footer() string {
	if p.FooterText != "" {
		return p.FooterText
	}
	return DefaultFooterText
}

// PaymentMethodLabel etiqueta legible del método de pago por defecto.
func (c *Company) PaymentMethodLabel() string {
	switch c.DefaultPaymentMethod {
	case "cash":
		return "Cash"
	case "check":
		return "Check"
	case "card":
		return "Credit/Debit Card"
	case "bank_transfer":
		return "Bank Transfer"
	default:
		return "Any Payment Method"
	}
}

// PaymentTermsLabel "Due on Receipt" con 0 días, "Net N days" en otro caso;
// vacío si el tenant no configuró plazo.
func (c *Company) PaymentTermsLabel() string {
	if c.PaymentTermsDays == nil {
		return ""
	}
	if *c.PaymentTermsDays == 0 {
		return "Due on Receipt"
	}
	return fmt.Sprintf("Net %d days", *c.PaymentTermsDays)
}

// LateFeeLabel política de recargo; vacío salvo que el porcentaje sea > 0.
func (c *Company) LateFeeLabel() string {
	if c.LateFeePercentage == nil || !c.LateFeePercentage.IsPositive() {
		return ""
	}
	return fmt.Sprintf("%s%% late fee applies to overdue balances", c.LateFeePercentage.String())
}
