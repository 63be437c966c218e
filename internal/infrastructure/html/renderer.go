// Package html implementa el modo markup: el mismo Record renderizado como un
// documento HTML autocontenido (cuerpo de correo o vista previa).
package html

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

//go:embed templates/document.html
var templatesFS embed.FS

// Options configuración del renderizador HTML.
type Options struct {
	Locale         string // BCP 47, p. ej. "en-US"
	CurrencySymbol string
}

// MarkupRenderer implementa documents.DocumentRenderer en modo HTML.
// La plantilla se parsea una vez; Execute es seguro en concurrencia.
type MarkupRenderer struct {
	tpl   *template.Template
	money currencyFormatter
}

// NewMarkupRenderer parsea la plantilla embebida.
func NewMarkupRenderer(opts Options) (*MarkupRenderer, error) {
	r := &MarkupRenderer{money: newCurrencyFormatter(opts.Locale, opts.CurrencySymbol)}
	funcs := template.FuncMap{
		"statusColor":   statusColor,
		"priorityColor": priorityColor,
		"humanize":      humanize,
	}
	tpl, err := template.New("document.html").Funcs(funcs).ParseFS(templatesFS, "templates/document.html")
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	r.tpl = tpl
	return r, nil
}

// Render ejecuta la plantilla. En la superficie de correo antepone el cuerpo
// del correo del tenant y aplica show_on_email a los enlaces sociales.
func (r *MarkupRenderer) Render(_ context.Context, rec *documents.Record, surface documents.Surface) (*documents.Artifact, error) {
	if rec == nil || rec.Document == nil {
		return nil, fmt.Errorf("html renderer: documento vacío")
	}
	v := r.buildView(rec, surface)
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return &documents.Artifact{ContentType: "text/html; charset=utf-8", Data: buf.Bytes()}, nil
}

// ── Modelo de vista ───────────────────────────────────────────────────────────

type partyView struct {
	Title string
	Lines []string
}

type lineView struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

type totalView struct {
	Label string
	Value string
	Grand bool
}

type paymentView struct {
	Method  string
	Terms   string
	LateFee string
}

type jobView struct {
	Status    string
	Priority  string
	Assignee  string
	Scheduled string
	Actual    string
}

type signatureView struct {
	Signed     bool
	Image      template.URL
	SignerName string
	SignedAt   string
	Acceptance string
}

type documentView struct {
	Title       string
	Label       string
	Number      string
	Date        string
	SecondLabel string
	SecondDate  string
	CompanyName string
	LogoURL     string
	Intro       []string
	From        partyView
	To          partyView
	Job         *jobView
	JobTitle    string
	Description string
	ShowDetails bool
	Lines       []lineView
	Totals      []totalView
	Payment     *paymentView
	Signature   *signatureView
	Notes       string
	Terms       string
	Footer      string
	SocialLinks []socialView
}

// buildView traduce el Record a lo que necesita la plantilla, con los montos
// ya formateados en el locale.
func (r *MarkupRenderer) buildView(rec *documents.Record, surface documents.Surface) documentView {
	doc := rec.Document
	prefs := rec.Preferences
	email := surface == documents.SurfaceEmail

	v := documentView{
		Title:       rec.Kind.Title(),
		Label:       rec.Kind.Label(),
		Number:      doc.DisplayNumber(),
		Date:        formatDate(doc.CreatedAt),
		CompanyName: rec.CompanyName(),
		ShowDetails: prefs.ShowLineItemDetails,
		Footer:      prefs.Footer(),
		Terms:       strings.TrimSpace(prefs.TermsConditions),
		SocialLinks: socialLinks(rec.SocialLinks, rec.Kind, email),
	}
	switch rec.Kind {
	case entity.KindQuote:
		v.SecondLabel, v.SecondDate = "Valid Until", formatOptionalDate(doc.ValidUntil)
	case entity.KindInvoice:
		v.SecondLabel, v.SecondDate = "Due Date", formatOptionalDate(doc.DueDate)
	}
	if prefs.ShowLogo {
		v.LogoURL = rec.LogoURL
	}
	if email {
		v.Intro = paragraphs(documents.EmailIntro(rec))
	}
	if prefs.ShowNotes {
		v.Notes = strings.TrimSpace(doc.Notes)
	}

	v.From = partyView{Title: "From"}
	if c := rec.Company; c != nil {
		v.From.Lines = nonEmpty(c.Name)
		v.From.Lines = append(v.From.Lines, c.Address.Lines()...)
		v.From.Lines = append(v.From.Lines, nonEmpty(c.Phone, c.Email, c.Website)...)
	}
	v.To = customerParty(rec)

	for _, it := range rec.Items {
		v.Lines = append(v.Lines, lineView{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   r.money.format(it.UnitPrice),
			Total:       r.money.format(it.Total()),
		})
	}
	v.Totals = r.totalLines(rec)

	if rec.Kind == entity.KindInvoice && rec.Company != nil {
		v.Payment = &paymentView{
			Method:  rec.Company.PaymentMethodLabel(),
			Terms:   rec.Company.PaymentTermsLabel(),
			LateFee: rec.Company.LateFeeLabel(),
		}
	}
	if rec.Kind == entity.KindJob {
		v.Job = jobPanel(rec)
		v.JobTitle = doc.Title
		v.Description = strings.TrimSpace(doc.Description)
	}
	if prefs.ShowSignature {
		v.Signature = signaturePanel(rec)
	}
	return v
}

func customerParty(rec *documents.Record) partyView {
	p := partyView{Title: "Bill To"}
	if rec.Kind == entity.KindJob {
		p.Title = "Service Address"
	}
	c := rec.Customer
	addr := entity.Address{}
	if c != nil {
		p.Lines = nonEmpty(c.Name)
		addr = c.Address
	}
	if rec.Kind == entity.KindJob {
		if svc := rec.Document.ServiceAddress.Lines(); len(svc) > 0 {
			p.Lines = append(p.Lines, svc...)
			addr = entity.Address{}
		}
	}
	p.Lines = append(p.Lines, addr.Lines()...)
	if c != nil {
		p.Lines = append(p.Lines, nonEmpty(c.Phone, c.Email)...)
	}
	return p
}

func (r *MarkupRenderer) totalLines(rec *documents.Record) []totalView {
	t := rec.Totals
	out := []totalView{{Label: "Subtotal", Value: r.money.format(t.Subtotal)}}
	if t.HasDiscount() {
		label := "Discount"
		if rec.Document.DiscountType != entity.DiscountAmount {
			label = fmt.Sprintf("Discount (%s%%)", rec.Document.DiscountValue.String())
		}
		out = append(out, totalView{Label: label, Value: r.money.format(t.DiscountAmount.Neg())})
	}
	out = append(out, totalView{Label: "Tax", Value: r.money.format(t.Tax)})
	if t.HasLateFee() {
		return append(out,
			totalView{Label: "Late Fee", Value: r.money.format(t.LateFee)},
			totalView{Label: "Total Due", Value: r.money.format(t.TotalDue), Grand: true},
		)
	}
	return append(out, totalView{Label: "Total", Value: r.money.format(t.Total), Grand: true})
}

func jobPanel(rec *documents.Record) *jobView {
	doc := rec.Document
	j := &jobView{
		Status:    doc.Status,
		Priority:  doc.Priority,
		Scheduled: formatRange(doc.ScheduledStart, doc.ScheduledEnd),
		Actual:    formatRange(doc.ActualStart, doc.ActualEnd),
	}
	if rec.Assignee != nil {
		j.Assignee = rec.Assignee.DisplayName()
	}
	return j
}

// signaturePanel firmado: imagen + nombre + fecha. Sin firma: línea en blanco
// con etiquetas y declaración de aceptación.
func signaturePanel(rec *documents.Record) *signatureView {
	sig := rec.Signature
	if sig != nil {
		s := &signatureView{Signed: true, SignerName: sig.SignerName, SignedAt: formatDate(sig.SignedAt)}
		if strings.HasPrefix(sig.ImageData, "data:image/") {
			s.Image = template.URL(sig.ImageData)
		}
		return s
	}
	acceptance := fmt.Sprintf("By signing below, I accept this %s and agree to its terms and conditions.", strings.ToLower(rec.Kind.Label()))
	if rec.Kind == entity.KindJob {
		acceptance = "By signing below, I confirm the work described above was completed to my satisfaction."
	}
	return &signatureView{Acceptance: acceptance}
}

// paragraphs parte el cuerpo del correo por líneas en blanco.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
