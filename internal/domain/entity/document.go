package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento comercial que se puede renderizar.
type DocumentKind string

const (
	KindQuote   DocumentKind = "quote"
	KindInvoice DocumentKind = "invoice"
	KindJob     DocumentKind = "job"
)

// ParseDocumentKind valida el valor recibido en la petición (quote | invoice | job).
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch k := DocumentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindQuote, KindInvoice, KindJob:
		return k, nil
	}
	return "", fmt.Errorf("tipo de documento desconocido: %q", s)
}

// Title título impreso en la cabecera del documento.
func (k DocumentKind) Title() string {
	switch k {
	case KindQuote:
		return "QUOTE"
	case KindInvoice:
		return "INVOICE"
	default:
		return "JOB SUMMARY"
	}
}

// Label nombre legible (asunto del correo, etiquetas).
func (k DocumentKind) Label() string {
	switch k {
	case KindQuote:
		return "Quote"
	case KindInvoice:
		return "Invoice"
	default:
		return "Job Summary"
	}
}

// numberPrefix prefijo de numeración que se guarda en la DB y no se imprime.
func (k DocumentKind) numberPrefix() string {
	switch k {
	case KindQuote:
		return "Q-"
	case KindInvoice:
		return "INV-"
	default:
		return "JOB-"
	}
}

// Estados de quotes e invoices. Los jobs tienen su propio ciclo (scheduled, in_progress, ...).
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
)

// Tipos de descuento.
const (
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

// Document cabecera de un Quote, Invoice o JobSummary.
// Exactamente una de las columnas quote_number / invoice_number / job_number
// viene poblada según Kind; el repositorio la copia en Number.
type Document struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Kind          DocumentKind
	Number        string
	CreatedAt     time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
	Total         decimal.Decimal
	LateFeeAmount decimal.Decimal // solo invoices
	Status        string
	Notes         string
	DueDate       *time.Time // invoice
	ValidUntil    *time.Time // quote
	JobID         string     // job vinculado (quote/invoice)
	SignatureID   string

	// Campos exclusivos de JobSummary.
	Title          string
	Description    string
	Priority       string
	AssignedTo     string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	ServiceAddress Address
}

// DisplayNumber número sin el prefijo de numeración del tipo (Q-, INV-, JOB-).
func (d *Document) DisplayNumber() string {
	p := d.Kind.numberPrefix()
	if len(d.Number) > len(p) && strings.EqualFold(d.Number[:len(p)], p) {
		return d.Number[len(p):]
	}
	return d.Number
}

// CanBeMarkedSent solo quotes/invoices en borrador avanzan a "sent" tras el envío.
func (d *Document) CanBeMarkedSent() bool {
	return d.Kind != KindJob && d.Status == StatusDraft
}

// Address dirección postal; cada campo es opcional.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Lines devuelve solo las líneas no vacías ("calle", "ciudad, estado zip").
func (a Address) Lines() []string {
	var out []string
	if s := strings.TrimSpace(a.Street); s != "" {
		out = append(out, s)
	}
	cityState := joinNonEmpty(", ", a.City, a.State)
	if last := joinNonEmpty(" ", cityState, a.Zip); last != "" {
		out = append(out, last)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
