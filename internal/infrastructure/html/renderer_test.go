package html_test

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/infrastructure/html"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newRenderer(t *testing.T) *html.MarkupRenderer {
	t.Helper()
	r, err := html.NewMarkupRenderer(html.Options{Locale: "en-US", CurrencySymbol: "$"})
	require.NoError(t, err)
	return r
}

func invoiceRecord() *documents.Record {
	doc := &entity.Document{
		ID:            "11111111-1111-1111-1111-111111111111",
		CompanyID:     "22222222-2222-2222-2222-222222222222",
		Kind:          entity.KindInvoice,
		Number:        "INV-2002",
		CreatedAt:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		TaxAmount:     decimal.NewFromInt(80),
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		Status:        entity.StatusDraft,
	}
	items := []entity.LineItem{
		{Description: "Water heater install", Quantity: 1, UnitPrice: decimal.RequireFromString("1000")},
		{Description: "Fittings", Quantity: 4, UnitPrice: decimal.RequireFromString("0.125")},
	}
	rec := &documents.Record{
		Kind:        entity.KindInvoice,
		Document:    doc,
		Items:       items,
		Company:     &entity.Company{Name: "Acme Plumbing", Email: "billing@acme.test", DefaultPaymentMethod: "check"},
		Customer:    &entity.Customer{Name: "Jane Doe"},
		Preferences: entity.DefaultRenderPreferences(),
	}
	rec.Totals = entity.ComputeTotals(doc, items)
	return rec
}

func renderHTML(t *testing.T, rec *documents.Record, surface documents.Surface) string {
	t.Helper()
	out, err := newRenderer(t).Render(context.Background(), rec, surface)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", out.ContentType)
	return string(out.Data)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montos y columnas
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkup_MontosConFormatoDeLocale(t *testing.T) {
	body := renderHTML(t, invoiceRecord(), documents.SurfaceDownload)

	// subtotal = 1000 + 4 × 0.125 = 1000.50; descuento 10% = 100.05; total = 980.45
	assert.Contains(t, body, "$1,000.50")
	assert.Contains(t, body, "Discount (10%)")
	assert.Contains(t, body, "-$100.05")
	assert.Contains(t, body, "$980.45")
	assert.Contains(t, body, "INVOICE")
	assert.Contains(t, body, "2002")
	assert.NotContains(t, body, "INV-2002")
}

func TestMarkup_ColumnasDeDetalleSegunPreferencia(t *testing.T) {
	rec := invoiceRecord()
	assert.Contains(t, renderHTML(t, rec, documents.SurfaceDownload), "Unit Price")

	rec.Preferences.ShowLineItemDetails = false
	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.NotContains(t, body, "Unit Price")
	assert.NotContains(t, body, ">Qty<")
	assert.Contains(t, body, "Water heater install")
}

func TestMarkup_InvoiceConMora(t *testing.T) {
	rec := invoiceRecord()
	rec.Document.LateFeeAmount = decimal.NewFromInt(25)
	rec.Totals = entity.ComputeTotals(rec.Document, rec.Items)

	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.Contains(t, body, "Total Due")
	assert.Contains(t, body, "$1,005.45")
	assert.NotContains(t, body, "<td>Total</td>")
}

// ──────────────────────────────────────────────────────────────────────────────
// Paneles condicionales
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkup_PanelDePagoSoloEnInvoices(t *testing.T) {
	rec := invoiceRecord()
	days, fee := 0, decimal.NewFromFloat(1.5)
	rec.Company.PaymentTermsDays = &days
	rec.Company.LateFeePercentage = &fee

	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.Contains(t, body, "Payment Information")
	assert.Contains(t, body, "Check")
	assert.Contains(t, body, "Due on Receipt")
	assert.Contains(t, body, "1.5% late fee applies to overdue balances")

	zero := decimal.Zero
	rec.Company.LateFeePercentage = &zero
	assert.NotContains(t, renderHTML(t, rec, documents.SurfaceDownload), "late fee applies")

	rec.Kind = entity.KindQuote
	rec.Document.Kind = entity.KindQuote
	assert.NotContains(t, renderHTML(t, rec, documents.SurfaceDownload), "Payment Information")
}

func TestMarkup_PanelDeJob(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)
	rec := invoiceRecord()
	rec.Kind = entity.KindJob
	rec.Document.Kind = entity.KindJob
	rec.Document.Number = "JOB-77"
	rec.Document.Status = "in_progress"
	rec.Document.Priority = "urgent"
	rec.Document.Title = "Kitchen leak"
	rec.Document.Description = "Leak under the sink."
	rec.Document.ScheduledStart, rec.Document.ScheduledEnd = &start, &end
	rec.Document.ServiceAddress = entity.Address{Street: "12 Elm St", City: "Austin", State: "TX", Zip: "78701"}
	rec.Assignee = &entity.User{Name: "Tom Tech"}

	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.Contains(t, body, "JOB SUMMARY")
	assert.Contains(t, body, "In Progress")
	assert.Contains(t, body, "Urgent")
	assert.Contains(t, body, "#dc2626")
	assert.Contains(t, body, "Tom Tech")
	assert.Contains(t, body, "Mar 5, 2024 9:00 AM - 11:30 AM")
	assert.Contains(t, body, "Kitchen leak")
	assert.Contains(t, body, "Leak under the sink.")
	assert.Contains(t, body, "Service Address")
	assert.Contains(t, body, "Austin, TX 78701")
	assert.NotContains(t, body, "Payment Information")
}

func TestMarkup_EstadoConAcentoInicial(t *testing.T) {
	rec := invoiceRecord()
	rec.Kind = entity.KindJob
	rec.Document.Kind = entity.KindJob
	rec.Document.Status = "éxito_parcial"
	rec.Document.Priority = "ÚRGENTE"

	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.True(t, utf8.ValidString(body))
	assert.Contains(t, body, "Éxito Parcial")
	assert.Contains(t, body, "Úrgente")
}

func TestMarkup_SinNotasNoHaySeccion(t *testing.T) {
	rec := invoiceRecord()
	assert.NotContains(t, renderHTML(t, rec, documents.SurfaceDownload), "<h2>Notes</h2>")

	rec.Document.Notes = "Gate code 1234"
	assert.Contains(t, renderHTML(t, rec, documents.SurfaceDownload), "<h2>Notes</h2>")
}

func TestMarkup_TerminosYPiePersonalizados(t *testing.T) {
	rec := invoiceRecord()
	body := renderHTML(t, rec, documents.SurfaceDownload)
	assert.NotContains(t, body, "Terms &amp; Conditions")
	assert.Contains(t, body, entity.DefaultFooterText)

	rec.Preferences.TermsConditions = "Warranty: 1 year parts & labor."
	rec.Preferences.FooterText = "Licensed and insured"
	body = renderHTML(t, rec, documents.SurfaceDownload)
	assert.Contains(t, body, "Terms &amp; Conditions")
	assert.Contains(t, body, "Warranty: 1 year parts &amp; labor.")
	assert.Contains(t, body, "Licensed and insured")
	assert.NotContains(t, body, entity.DefaultFooterText)
}

// El PDF omite la sección sin firma; el HTML dibuja una línea en blanco.
func TestMarkup_SinFirmaDibujaBloqueEnBlanco(t *testing.T) {
	body := renderHTML(t, invoiceRecord(), documents.SurfaceDownload)

	assert.Contains(t, body, "blank-signature")
	assert.Contains(t, body, ">Signature<")
	assert.Contains(t, body, "Printed Name")
	assert.Contains(t, body, "By signing below, I accept this invoice")
}

func TestMarkup_ConFirma(t *testing.T) {
	rec := invoiceRecord()
	rec.Signature = &entity.Signature{
		SignerName: "Jane Doe",
		SignedAt:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		ImageData:  "data:image/png;base64,iVBORw0KGgo=",
	}
	body := renderHTML(t, rec, documents.SurfaceDownload)

	assert.Contains(t, body, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.Contains(t, body, "March 6, 2024")
	assert.NotContains(t, body, "Printed Name")
}

func TestMarkup_FirmaDeshabilitada(t *testing.T) {
	rec := invoiceRecord()
	rec.Preferences.ShowSignature = false
	assert.NotContains(t, renderHTML(t, rec, documents.SurfaceDownload), "Printed Name")
}

func TestMarkup_LogoSegunPreferencia(t *testing.T) {
	rec := invoiceRecord()
	rec.LogoURL = "https://cdn.example.com/logos/acme.png"
	assert.Contains(t, renderHTML(t, rec, documents.SurfaceDownload), rec.LogoURL)

	rec.Preferences.ShowLogo = false
	assert.NotContains(t, renderHTML(t, rec, documents.SurfaceDownload), rec.LogoURL)
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo y enlaces sociales
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkup_CorreoAnteponeCuerpoDelTenant(t *testing.T) {
	rec := invoiceRecord()
	custom := "Hello {customer_name}, invoice {document_number} from {company_name} is ready."
	rec.Preferences.EmailInvoiceBody = custom

	email := renderHTML(t, rec, documents.SurfaceEmail)
	assert.Contains(t, email, "Hello Jane Doe, invoice 2002 from Acme Plumbing is ready.")

	download := renderHTML(t, rec, documents.SurfaceDownload)
	assert.NotContains(t, download, "Hello Jane Doe")
}

func TestMarkup_EnlaceSinShowOnEmailNoApareceEnCorreo(t *testing.T) {
	rec := invoiceRecord()
	rec.SocialLinks = []entity.SocialLink{
		{Platform: "Facebook", URL: "https://facebook.com/acme", ShowOnInvoice: true, ShowOnEmail: false},
		{Platform: "Instagram", URL: "https://instagram.com/acme", ShowOnInvoice: true, ShowOnEmail: true},
		{Platform: "Yelp", URL: "https://yelp.com/acme", ShowOnQuote: true, ShowOnEmail: true},
	}

	email := renderHTML(t, rec, documents.SurfaceEmail)
	assert.NotContains(t, email, "https://facebook.com/acme")
	assert.Contains(t, email, "https://instagram.com/acme")
	assert.NotContains(t, email, "https://yelp.com/acme", "no visible en invoices")

	download := renderHTML(t, rec, documents.SurfaceDownload)
	assert.Contains(t, download, "https://facebook.com/acme")
	assert.NotContains(t, download, "https://yelp.com/acme")
}

func TestMarkup_IconoDelTenantTienePrioridad(t *testing.T) {
	rec := invoiceRecord()
	rec.SocialLinks = []entity.SocialLink{
		{Platform: "Facebook", URL: "https://facebook.com/acme", IconURL: "https://cdn.acme.test/fb.png", ShowOnInvoice: true},
		{Platform: "Angi", URL: "https://angi.com/acme", ShowOnInvoice: true},
	}
	body := renderHTML(t, rec, documents.SurfaceDownload)

	assert.Contains(t, body, `src="https://cdn.acme.test/fb.png"`)
	assert.NotContains(t, body, "cdn.simpleicons.org/facebook")
	assert.Contains(t, body, `title="Angi">Angi</a>`, "sin icono: enlace de texto")
}

func TestIconFor(t *testing.T) {
	cases := []struct {
		platform string
		want     string
		ok       bool
	}{
		{"facebook", "https://cdn.simpleicons.org/facebook", true},
		{"  LinkedIn ", "https://cdn.simpleicons.org/linkedin", true},
		{"Google Business", "https://cdn.simpleicons.org/google", true},
		{"My Facebook Page", "https://cdn.simpleicons.org/facebook", true},
		{"X", "https://cdn.simpleicons.org/x", true},
		{"Twitter / X", "https://cdn.simpleicons.org/x", true},
		{"xing", "", false},
		{"Angi", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := html.IconFor(tc.platform)
		assert.Equal(t, tc.ok, ok, tc.platform)
		assert.Equal(t, tc.want, got, tc.platform)
	}
}
