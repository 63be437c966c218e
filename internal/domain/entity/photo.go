package entity

import (
	"strings"
	"time"
)

// Clasificación de fotos de un job.
const (
	PhotoBefore = "before"
	PhotoAfter  = "after"
	PhotoOther  = "other"
)

// PhotoGroups orden en que se imprimen los grupos.
var PhotoGroups = []string{PhotoBefore, PhotoAfter, PhotoOther}

// Photo foto de un job. StoragePath apunta al bucket privado; URL es el
// signed URL resuelto justo antes de renderizar.
type Photo struct {
	ID          string
	JobID       string
	Type        string
	Caption     string
	StoragePath string
	URL         string
	CreatedAt   time.Time
}

// Group normaliza Type a before / after / other.
func (p Photo) Group() string {
	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case PhotoBefore:
		return PhotoBefore
	case PhotoAfter:
		return PhotoAfter
	default:
		return PhotoOther
	}
}

// GroupPhotos agrupa manteniendo el orden original dentro de cada grupo.
func GroupPhotos(photos []Photo) map[string][]Photo {
	out := make(map[string][]Photo, len(PhotoGroups))
	for _, p := range photos {
		g := p.Group()
		out[g] = append(out[g], p)
	}
	return out
}

// PhotoGroupTitle título de sección para cada grupo.
func PhotoGroupTitle(group string) string {
	switch group {
	case PhotoBefore:
		return "Before Photos"
	case PhotoAfter:
		return "After Photos"
	default:
		return "Other Photos"
	}
}
