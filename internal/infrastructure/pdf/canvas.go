package pdf

import "strings"

// Dimensiones US-Letter en puntos; el origen es la esquina superior izquierda
// y la Y de un texto es su línea base.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 50.0

	contentRight  = PageWidth - Margin
	contentWidth  = PageWidth - 2*Margin
	contentBottom = PageHeight - 70 // espacio reservado para el pie
	footerY       = PageHeight - 30
)

// OpKind tipo de primitiva de dibujo.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpRect
	OpImage
)

// Align anclaje horizontal de un texto respecto a X.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Color RGB.
type Color struct{ R, G, B int }

var (
	colorPrimary = Color{30, 64, 175}
	colorText    = Color{17, 24, 39}
	colorMuted   = Color{107, 114, 128}
	colorDivider = Color{229, 231, 235}
	colorWhite   = Color{255, 255, 255}
)

// Font estilo de un texto.
type Font struct {
	Size  float64
	Bold  bool
	Color Color
	Align Align
}

// Image imagen ya normalizada (PNG o JPG) lista para incrustar.
type Image struct {
	Format string // "PNG" | "JPG"
	Data   []byte
	Width  int // píxeles
	Height int
}

// Op primitiva de dibujo posicionada en absoluto.
type Op struct {
	Kind      OpKind
	X, Y      float64
	X2, Y2    float64 // fin de línea
	W, H      float64 // rectángulo / imagen
	Text      string
	Font      Font
	Color     Color // línea / rectángulo
	Fill      bool
	LineWidth float64
	Image     *Image
}

// Page lista ordenada de primitivas de una hoja.
type Page struct {
	Ops []Op
}

func (p *Page) text(x, y float64, s string, f Font) {
	p.Ops = append(p.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Font: f})
}

func (p *Page) line(x1, y1, x2, y2, width float64, c Color) {
	p.Ops = append(p.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Color: c})
}

func (p *Page) rect(x, y, w, h float64, c Color, fill bool) {
	p.Ops = append(p.Ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c, Fill: fill})
}

func (p *Page) image(x, y, w, h float64, img *Image) {
	p.Ops = append(p.Ops, Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Image: img})
}

// Canvas documento paginado en memoria; uno por render, nunca compartido.
type Canvas struct {
	Width   float64
	Height  float64
	Title   string
	Author  string
	Pages   []*Page
	Dropped int      // filas/líneas descartadas (solo OverflowTruncate)
	Missing []string // imágenes que no se pudieron obtener o decodificar
}

func newCanvas(title, author string) *Canvas {
	return &Canvas{Width: PageWidth, Height: PageHeight, Title: title, Author: author}
}

func (c *Canvas) addPage() *Page {
	p := &Page{}
	c.Pages = append(c.Pages, p)
	return p
}

// Texts todos los textos en orden de dibujo (todas las hojas).
func (c *Canvas) Texts() []string {
	var out []string
	for _, p := range c.Pages {
		for _, op := range p.Ops {
			if op.Kind == OpText {
				out = append(out, op.Text)
			}
		}
	}
	return out
}

// HasText informa si algún texto es exactamente s.
func (c *Canvas) HasText(s string) bool {
	for _, t := range c.Texts() {
		if t == s {
			return true
		}
	}
	return false
}

// HasTextPrefix informa si algún texto empieza por prefix.
func (c *Canvas) HasTextPrefix(prefix string) bool {
	for _, t := range c.Texts() {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// ImageCount número de imágenes incrustadas.
func (c *Canvas) ImageCount() int {
	n := 0
	for _, p := range c.Pages {
		for _, op := range p.Ops {
			if op.Kind == OpImage {
				n++
			}
		}
	}
	return n
}

// cursor posición de escritura dentro de la hoja actual.
type cursor struct {
	x, y float64
}
