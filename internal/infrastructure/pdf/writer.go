package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

const fontFamily = "Helvetica"

// Write serializa el Canvas a bytes PDF con gofpdf. Las imágenes que gofpdf no
// logra registrar se omiten y se informan en el segundo valor de retorno.
func Write(c *Canvas) ([]byte, []string, error) {
	if c == nil || len(c.Pages) == 0 {
		return nil, nil, fmt.Errorf("pdf: canvas vacío")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: c.Width, Ht: c.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetTitle(c.Title, true)
	pdf.SetAuthor(c.Author, true)
	pdf.SetCreator("fieldops-api", true)

	// Helvetica core usa cp1252: acentos y símbolos pasan por el traductor.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var missing []string
	images := 0
	for _, page := range c.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpText:
				drawText(pdf, tr, op)
			case OpLine:
				pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.SetLineWidth(op.LineWidth)
				pdf.Line(op.X, op.Y, op.X2, op.Y2)
			case OpRect:
				style := "D"
				if op.Fill {
					style = "F"
					pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
				} else {
					pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
				}
				pdf.Rect(op.X, op.Y, op.W, op.H, style)
			case OpImage:
				images++
				if !drawImage(pdf, fmt.Sprintf("img%d", images), op) {
					missing = append(missing, "image")
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, missing, fmt.Errorf("pdf: serializar: %w", err)
	}
	return buf.Bytes(), missing, nil
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, op Op) {
	style := ""
	if op.Font.Bold {
		style = "B"
	}
	pdf.SetFont(fontFamily, style, op.Font.Size)
	pdf.SetTextColor(op.Font.Color.R, op.Font.Color.G, op.Font.Color.B)

	s := tr(op.Text)
	x := op.X
	switch op.Font.Align {
	case AlignRight:
		x -= pdf.GetStringWidth(s)
	case AlignCenter:
		x -= pdf.GetStringWidth(s) / 2
	}
	pdf.Text(x, op.Y, s)
}

// drawImage registra e incrusta la imagen. Un error de gofpdf queda pegado en
// el documento, así que se limpia para que el resto siga dibujándose.
func drawImage(pdf *gofpdf.Fpdf, name string, op Op) bool {
	if op.Image == nil || len(op.Image.Data) == 0 {
		return false
	}
	opt := gofpdf.ImageOptions{ImageType: op.Image.Format}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(op.Image.Data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, op.X, op.Y, op.W, op.H, false, opt, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	return true
}
