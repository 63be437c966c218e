// Package pdf implementa el modo canvas: convierte un documento ensamblado en
// hojas US-Letter de primitivas posicionadas en absoluto y las serializa a PDF.
//
// Orden de la página:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  TÍTULO (QUOTE / INVOICE / JOB SUMMARY)          [LOGO]  │
//	│  N° / Fecha / Valid Until | Due Date                     │
//	│  FROM                        BILL TO | SERVICE ADDRESS   │
//	│  ┌ Description ───────── Qty ── Unit Price ── Total ──┐  │
//	│  │ filas + divisores                                  │  │
//	│                              Subtotal/Discount/Tax/Total │
//	│  Firma · Notas · Fotos (before/after/other) · Términos   │
//	│                     pie centrado                         │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// Overflow política cuando la hoja se llena en la tabla, las notas o los términos.
type Overflow int

const (
	// OverflowPaginate continúa en una hoja nueva (repite la cabecera de la tabla).
	OverflowPaginate Overflow = iota
	// OverflowTruncate descarta el resto y lo contabiliza en Canvas.Dropped.
	OverflowTruncate
)

// ParseOverflow "paginate" (por defecto) | "truncate".
func ParseOverflow(s string) Overflow {
	if s == "truncate" {
		return OverflowTruncate
	}
	return OverflowPaginate
}

// Options configuración del motor de layout.
type Options struct {
	Overflow Overflow
}

// Layout motor de layout. Sin estado mutable: cada Render usa su propio Canvas y cursor.
type Layout struct {
	fetcher ImageFetcher
	opts    Options
}

// NewLayout construye el motor con el fetcher de imágenes.
func NewLayout(fetcher ImageFetcher, opts Options) *Layout {
	return &Layout{fetcher: fetcher, opts: opts}
}

// Medidas de la tabla y las fotos.
const (
	rowHeight     = 20.0
	bandHeight    = 22.0
	lineHeight    = 14.0
	sectionGap    = 20.0
	logoMaxW      = 150.0
	logoMaxH      = 60.0
	signatureMaxW = 200.0
	signatureMaxH = 60.0
	thumbW        = 120.0
	thumbH        = 90.0
	thumbGap      = 10.0
	thumbsPerRow  = 4
)

// Columnas de la tabla: descripción alineada a la izquierda; cantidad, precio
// unitario y total alineados a la derecha sobre anclas fijas.
var (
	colDescription = Margin + 6
	colQtyRight    = contentRight - 180
	colUnitRight   = contentRight - 90
	colTotalRight  = contentRight - 6
)

// render estado de un único render.
type render struct {
	ctx    context.Context
	l      *Layout
	rec    *documents.Record
	canvas *Canvas
	page   *Page
	cur    cursor
}

// Render construye el Canvas paginado del documento.
func (l *Layout) Render(ctx context.Context, rec *documents.Record) (*Canvas, error) {
	if rec == nil || rec.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	r := &render{
		ctx:    ctx,
		l:      l,
		rec:    rec,
		canvas: newCanvas(rec.Kind.Title()+" "+rec.Document.DisplayNumber(), rec.CompanyName()),
	}
	r.newPage()

	r.header()
	r.metadata()
	r.addresses()
	r.lineItems()
	r.totals()
	if rec.Preferences.ShowSignature && rec.Signature != nil {
		r.signature()
	}
	if rec.Preferences.ShowNotes && rec.Document.Notes != "" {
		r.paragraphs("Notes", rec.Document.Notes)
	}
	r.photos()
	if rec.Preferences.TermsConditions != "" {
		r.paragraphs("Terms & Conditions", rec.Preferences.TermsConditions)
	}
	r.footer()

	return r.canvas, nil
}

// ── Cursor y paginación ───────────────────────────────────────────────────────

func (r *render) newPage() {
	r.page = r.canvas.addPage()
	r.cur = cursor{x: Margin, y: Margin}
}

func (r *render) fits(h float64) bool {
	return r.cur.y+h <= contentBottom
}

// ensure garantiza h puntos libres abriendo una hoja nueva si hace falta.
func (r *render) ensure(h float64) {
	if !r.fits(h) {
		r.newPage()
	}
}

func (r *render) missing(asset string) {
	r.canvas.Missing = append(r.canvas.Missing, asset)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// header: título según el tipo y logo arriba a la derecha.
func (r *render) header() {
	size := 28.0
	if r.rec.Kind == entity.KindJob {
		size = 24
	}
	top := r.cur.y
	r.page.text(Margin, top+size, r.rec.Kind.Title(), Font{Size: size, Bold: true, Color: colorPrimary})
	bottom := top + size + 12

	if r.rec.Preferences.ShowLogo && r.rec.LogoURL != "" {
		img, err := loadImage(r.ctx, r.l.fetcher, r.rec.LogoURL, logoMaxW, logoMaxH)
		if err != nil {
			r.missing("logo")
		} else {
			w, h := fitBox(float64(img.Width), float64(img.Height), logoMaxW, logoMaxH)
			r.page.image(contentRight-w, top, w, h, img)
			bottom = max(bottom, top+h+12)
		}
	}
	r.cur.y = bottom
}

// metadata: número (sin prefijo), fecha de creación y segunda fecha según el tipo.
func (r *render) metadata() {
	doc := r.rec.Document
	label := Font{Size: 10, Bold: true, Color: colorText}
	value := Font{Size: 10, Color: colorText}

	rows := [][2]string{{r.rec.Kind.Label() + " #:", doc.DisplayNumber()}}
	if !doc.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Date:", formatDate(doc.CreatedAt)})
	}
	switch {
	case r.rec.Kind == entity.KindQuote && doc.ValidUntil != nil:
		rows = append(rows, [2]string{"Valid Until:", formatDate(*doc.ValidUntil)})
	case r.rec.Kind == entity.KindInvoice && doc.DueDate != nil:
		rows = append(rows, [2]string{"Due Date:", formatDate(*doc.DueDate)})
	}
	for _, row := range rows {
		r.cur.y += lineHeight
		r.page.text(Margin, r.cur.y, row[0], label)
		r.page.text(Margin+85, r.cur.y, row[1], value)
	}
	r.cur.y += sectionGap
}

// addresses: bloque de dos columnas; solo se imprimen campos no vacíos.
func (r *render) addresses() {
	left := r.fromLines()
	rightTitle := "BILL TO"
	if r.rec.Kind == entity.KindJob {
		rightTitle = "SERVICE ADDRESS"
	}
	right := r.toLines()

	heading := Font{Size: 11, Bold: true, Color: colorPrimary}
	body := Font{Size: 10, Color: colorText}
	const rightCol = PageWidth / 2

	top := r.cur.y + lineHeight
	r.page.text(Margin, top, "FROM", heading)
	r.page.text(rightCol, top, rightTitle, heading)
	for i, s := range left {
		r.page.text(Margin, top+float64(i+1)*lineHeight, s, body)
	}
	for i, s := range right {
		r.page.text(rightCol, top+float64(i+1)*lineHeight, s, body)
	}
	r.cur.y = top + float64(max(len(left), len(right)))*lineHeight + sectionGap
}

func (r *render) fromLines() []string {
	c := r.rec.Company
	if c == nil {
		return nil
	}
	lines := nonEmpty(c.Name)
	lines = append(lines, c.Address.Lines()...)
	return append(lines, nonEmpty(c.Phone, c.Email, c.Website)...)
}

func (r *render) toLines() []string {
	c := r.rec.Customer
	var lines []string
	if c != nil {
		lines = nonEmpty(c.Name)
	}
	addr := entity.Address{}
	if c != nil {
		addr = c.Address
	}
	if r.rec.Kind == entity.KindJob {
		if svc := r.rec.Document.ServiceAddress.Lines(); len(svc) > 0 {
			lines = append(lines, svc...)
			addr = entity.Address{}
		}
	}
	lines = append(lines, addr.Lines()...)
	if c != nil {
		lines = append(lines, nonEmpty(c.Phone, c.Email)...)
	}
	return lines
}

// lineItems: banda de cabecera coloreada, filas con descripción truncada y
// montos alineados a la derecha, divisor fino entre filas.
func (r *render) lineItems() {
	r.ensure(bandHeight + rowHeight)
	r.tableHeader()

	body := Font{Size: 10, Color: colorText}
	right := Font{Size: 10, Color: colorText, Align: AlignRight}
	for i, it := range r.rec.Items {
		if !r.fits(rowHeight) {
			if r.l.opts.Overflow == OverflowTruncate {
				r.canvas.Dropped += len(r.rec.Items) - i
				break
			}
			r.newPage()
			r.tableHeader()
		}
		base := r.cur.y + 14
		r.page.text(colDescription, base, truncate(it.Description, descriptionMaxChars), body)
		r.page.text(colQtyRight, base, fmt.Sprintf("%d", it.Quantity), right)
		r.page.text(colUnitRight, base, formatMoney(it.UnitPrice), right)
		r.page.text(colTotalRight, base, formatMoney(it.Total()), right)
		r.cur.y += rowHeight
		r.page.line(Margin, r.cur.y, contentRight, r.cur.y, 0.5, colorDivider)
	}
	r.cur.y += sectionGap
}

func (r *render) tableHeader() {
	r.page.rect(Margin, r.cur.y, contentWidth, bandHeight, colorPrimary, true)
	base := r.cur.y + 15
	left := Font{Size: 10, Bold: true, Color: colorWhite}
	right := Font{Size: 10, Bold: true, Color: colorWhite, Align: AlignRight}
	r.page.text(colDescription, base, "Description", left)
	r.page.text(colQtyRight, base, "Qty", right)
	r.page.text(colUnitRight, base, "Unit Price", right)
	r.page.text(colTotalRight, base, "Total", right)
	r.cur.y += bandHeight
}

// totals: bloque alineado a la derecha. En invoices con recargo por mora,
// "Total Due" reemplaza a "Total".
func (r *render) totals() {
	t := r.rec.Totals
	type line struct {
		label, value string
		grand        bool
	}
	lines := []line{{"Subtotal:", formatMoney(t.Subtotal), false}}
	if t.HasDiscount() {
		label := "Discount:"
		if r.rec.Document.DiscountType != entity.DiscountAmount {
			label = fmt.Sprintf("Discount (%s%%):", r.rec.Document.DiscountValue.String())
		}
		lines = append(lines, line{label, formatMoney(t.DiscountAmount.Neg()), false})
	}
	lines = append(lines, line{"Tax:", formatMoney(t.Tax), false})
	if t.HasLateFee() {
		lines = append(lines,
			line{"Late Fee:", formatMoney(t.LateFee), false},
			line{"Total Due:", formatMoney(t.TotalDue), true},
		)
	} else {
		lines = append(lines, line{"Total:", formatMoney(t.Total), true})
	}

	r.ensure(float64(len(lines))*18 + 10)
	labelX := contentRight - 110
	for _, ln := range lines {
		size := 10.0
		if ln.grand {
			r.cur.y += 4
			r.page.line(labelX-60, r.cur.y, contentRight, r.cur.y, 1, colorPrimary)
			size = 12
		}
		r.cur.y += 18
		r.page.text(labelX, r.cur.y, ln.label, Font{Size: size, Bold: true, Color: colorText, Align: AlignRight})
		r.page.text(contentRight, r.cur.y, ln.value, Font{Size: size, Bold: ln.grand, Color: colorText, Align: AlignRight})
	}
	r.cur.y += sectionGap
}

// signature: nombre, fecha e imagen; si la imagen falla, el texto se mantiene.
func (r *render) signature() {
	sig := r.rec.Signature
	r.ensure(lineHeight*4 + signatureMaxH + sectionGap)
	r.sectionTitle("Signature")

	if sig.ImageData != "" {
		img, err := loadImage(r.ctx, r.l.fetcher, sig.ImageData, signatureMaxW, signatureMaxH)
		if err != nil {
			r.missing("signature")
		} else {
			w, h := fitBox(float64(img.Width), float64(img.Height), signatureMaxW, signatureMaxH)
			r.page.image(Margin, r.cur.y+6, w, h, img)
			r.cur.y += h + 6
		}
	}
	r.page.line(Margin, r.cur.y+4, Margin+signatureMaxW, r.cur.y+4, 0.5, colorMuted)
	body := Font{Size: 10, Color: colorText}
	if sig.SignerName != "" {
		r.cur.y += lineHeight + 4
		r.page.text(Margin, r.cur.y, "Signed by: "+sig.SignerName, body)
	}
	if !sig.SignedAt.IsZero() {
		r.cur.y += lineHeight
		r.page.text(Margin, r.cur.y, "Date: "+formatDate(sig.SignedAt), body)
	}
	r.cur.y += sectionGap
}

// paragraphs: notas y términos, partidos por conteo de caracteres.
func (r *render) paragraphs(title, text string) {
	lines := wrapText(text, wrapCharsPerLine)
	if len(lines) == 0 {
		return
	}
	r.ensure(lineHeight*3 + 4)
	r.sectionTitle(title)
	body := Font{Size: 10, Color: colorText}
	for i, s := range lines {
		if !r.fits(lineHeight) {
			if r.l.opts.Overflow == OverflowTruncate {
				r.canvas.Dropped += len(lines) - i
				break
			}
			r.newPage()
		}
		r.cur.y += lineHeight
		r.page.text(Margin, r.cur.y, s, body)
	}
	r.cur.y += sectionGap
}

// photos: una sección por grupo (before/after/other), 4 miniaturas por fila;
// las fotos siempre paginan.
func (r *render) photos() {
	visible := r.rec.VisiblePhotos()
	if len(visible) == 0 {
		return
	}
	groups := entity.GroupPhotos(visible)
	rowH := thumbH + lineHeight + 8
	caption := Font{Size: 8, Color: colorMuted}

	for _, g := range entity.PhotoGroups {
		list := groups[g]
		if len(list) == 0 {
			continue
		}
		r.ensure(lineHeight*2 + rowH)
		r.sectionTitle(entity.PhotoGroupTitle(g))
		r.cur.y += 6

		for i, p := range list {
			col := i % thumbsPerRow
			if col == 0 && i > 0 {
				r.cur.y += rowH
			}
			if col == 0 && !r.fits(rowH) {
				r.newPage()
			}
			x := Margin + float64(col)*(thumbW+thumbGap)
			img, err := loadImage(r.ctx, r.l.fetcher, p.URL, thumbW, thumbH)
			if err != nil {
				r.missing("photo")
			} else {
				w, h := fitBox(float64(img.Width), float64(img.Height), thumbW, thumbH)
				r.page.image(x+(thumbW-w)/2, r.cur.y+(thumbH-h)/2, w, h, img)
			}
			if p.Caption != "" {
				r.page.text(x, r.cur.y+thumbH+lineHeight, truncate(p.Caption, captionMaxChars), caption)
			}
		}
		r.cur.y += rowH + sectionGap
	}
}

// footer: centrado en la última hoja.
func (r *render) footer() {
	r.page.text(PageWidth/2, footerY, r.rec.Preferences.Footer(), Font{Size: 9, Color: colorMuted, Align: AlignCenter})
}

func (r *render) sectionTitle(title string) {
	r.cur.y += lineHeight + 2
	r.page.text(Margin, r.cur.y, title, Font{Size: 12, Bold: true, Color: colorPrimary})
}

// nonEmpty filtra cadenas vacías: ningún campo vacío imprime una línea.
func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
