package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Degradaciones recuperables: se registran y el documento se genera sin el dato.
	ErrPartialData      = errors.New("datos secundarios no disponibles")
	ErrAssetUnavailable = errors.New("imagen no disponible")

	// Fallo del envío de correo: se propaga al cliente, sin cambio de estado.
	ErrDeliveryFailed = errors.New("envío de correo fallido")
)

// WrapError conserva el error semántico (kind) junto al contexto de la operación.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", operation, kind)
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}
