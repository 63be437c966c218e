package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageFetcher descarga los bytes de una imagen (logo, foto, icono).
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolución máxima en píxeles por punto de caja.
const pxPerPoint = 2.0

var errEmptyImage = errors.New("imagen vacía")

// loadImage obtiene los bytes de src (URL http(s) o data URL base64) y los
// normaliza para una caja de boxW×boxH puntos.
func loadImage(ctx context.Context, f ImageFetcher, src string, boxW, boxH float64) (*Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "data:") {
		data, err = decodeDataURL(src)
	} else {
		if f == nil {
			return nil, errors.New("sin fetcher de imágenes")
		}
		data, err = f.Fetch(ctx, src)
	}
	if err != nil {
		return nil, err
	}
	return normalizeImage(data, boxW, boxH)
}

// decodeDataURL acepta "data:image/png;base64,...." o base64 plano.
func decodeDataURL(s string) ([]byte, error) {
	payload := s
	if i := strings.Index(s, ","); i >= 0 {
		payload = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("data url: %w", err)
	}
	return data, nil
}

// normalizeImage decodifica cualquier formato registrado (png, jpeg, gif, webp),
// reduce la imagen si excede la caja y la re-codifica como JPG (fotos) o PNG
// opaco sobre blanco (resto). gofpdf solo acepta PNG de 8 bits y JPEG.
func normalizeImage(data []byte, boxW, boxH float64) (*Image, error) {
	if len(data) == 0 {
		return nil, errEmptyImage
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen: %w", err)
	}

	img := downscale(src, int(boxW*pxPerPoint), int(boxH*pxPerPoint))
	b := img.Bounds()

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("codificar jpeg: %w", err)
		}
		return &Image{Format: "JPG", Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
	}

	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(flat, flat.Bounds(), &image.Uniform{C: color.White}, image.Point{}, stddraw.Src)
	stddraw.Draw(flat, flat.Bounds(), img, b.Min, stddraw.Over)
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("codificar png: %w", err)
	}
	return &Image{Format: "PNG", Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// downscale reduce src para que quepa en maxW×maxH píxeles, conservando proporción.
func downscale(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return src
	}
	w, h := fitBox(float64(b.Dx()), float64(b.Dy()), float64(maxW), float64(maxH))
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(w)), max(1, int(h))))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// fitBox escala (w, h) para caber en (maxW, maxH) manteniendo la proporción.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}
