package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
)

// documentService contrato que necesita el handler; lo implementa
// *documents.GenerateUseCase.
type documentService interface {
	Generate(ctx context.Context, companyID string, in dto.GenerateDocumentRequest) (*dto.GenerateDocumentResponse, error)
	Preview(ctx context.Context, companyID, kind, id string) (string, error)
}

// DocumentHandler maneja la generación y entrega de documentos (protegido).
type DocumentHandler struct {
	svc documentService
	log zerolog.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(svc documentService, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: log}
}

// Generate godoc
// @Summary      Generar documento (descarga o correo)
// @Description  download devuelve el PDF en base64; email lo envía adjunto y pasa quotes/invoices en borrador a sent
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateDocumentRequest  true  "type, documentId, action, recipientEmail (solo email)"
// @Success      200   {object}  dto.GenerateDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/documents/generate [post]
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	var in dto.GenerateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.svc.Generate(c.UserContext(), companyID, in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Vista previa HTML del documento
// @Tags         documents
// @Security     Bearer
// @Produce      html
// @Param        type  path  string  true  "quote | invoice | job"  Enums(quote, invoice, job)
// @Param        id    path  string  true  "UUID del documento"  Format(uuid)
// @Success      200   {string}  string  "documento HTML"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{type}/{id}/preview [get]
func (h *DocumentHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "token inválido"})
	}
	html, err := h.svc.Preview(c.UserContext(), companyID, c.Params("type"), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// writeError traduce los errores de dominio a status HTTP.
func (h *DocumentHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "no autorizado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "acceso denegado al documento"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: "documento no encontrado"})
	case errors.Is(err, domain.ErrDeliveryFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "DELIVERY_FAILED", Error: "no se pudo enviar el correo"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error generando documento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: "error interno"})
}
