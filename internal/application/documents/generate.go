package documents

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// GenerateUseCase genera un documento y lo entrega como descarga (base64) o por correo.
type GenerateUseCase struct {
	assembler *Assembler
	canvas    DocumentRenderer
	markup    DocumentRenderer
	mailer    MailSender
	docs      repository.DocumentRepository
	metrics   Recorder
	log       zerolog.Logger
}

// NewGenerateUseCase construye el caso de uso inyectando todas sus dependencias.
func NewGenerateUseCase(
	assembler *Assembler,
	canvas DocumentRenderer,
	markup DocumentRenderer,
	mailer MailSender,
	docs repository.DocumentRepository,
	metrics Recorder,
	log zerolog.Logger,
) *GenerateUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &GenerateUseCase{
		assembler: assembler,
		canvas:    canvas,
		markup:    markup,
		mailer:    mailer,
		docs:      docs,
		metrics:   metrics,
		log:       log,
	}
}

// generateRequest petición ya validada.
type generateRequest struct {
	kind      entity.DocumentKind
	id        string
	action    string
	recipient string
}

// validate rechaza la petición antes de cualquier lectura.
func validate(in dto.GenerateDocumentRequest) (generateRequest, error) {
	kind, err := entity.ParseDocumentKind(in.Type)
	if err != nil {
		return generateRequest{}, domain.WrapError(domain.ErrInvalidInput, "type", err)
	}
	if _, err := uuid.Parse(strings.TrimSpace(in.DocumentID)); err != nil {
		return generateRequest{}, domain.WrapError(domain.ErrInvalidInput, "documentId", err)
	}
	req := generateRequest{kind: kind, id: strings.TrimSpace(in.DocumentID), action: in.Action}
	switch in.Action {
	case dto.ActionDownload:
	case dto.ActionEmail:
		recipient := strings.TrimSpace(in.RecipientEmail)
		if recipient == "" {
			return generateRequest{}, domain.WrapError(domain.ErrInvalidInput, "recipientEmail es requerido para action=email", nil)
		}
		addr, err := mail.ParseAddress(recipient)
		if err != nil {
			return generateRequest{}, domain.WrapError(domain.ErrInvalidInput, "recipientEmail", err)
		}
		req.recipient = addr.Address
	default:
		return generateRequest{}, domain.WrapError(domain.ErrInvalidInput, "action", fmt.Errorf("acción desconocida: %q", in.Action))
	}
	return req, nil
}

// Generate valida, ensambla, renderiza y entrega.
//
// Retorna:
//   - domain.ErrInvalidInput   petición inválida (antes de leer datos).
//   - domain.ErrNotFound       el documento no existe.
//   - domain.ErrForbidden      el documento pertenece a otra empresa.
//   - domain.ErrDeliveryFailed el envío del correo falló (sin cambio de estado).
func (uc *GenerateUseCase) Generate(ctx context.Context, companyID string, in dto.GenerateDocumentRequest) (*dto.GenerateDocumentResponse, error) {
	req, err := validate(in)
	if err != nil {
		return nil, err
	}

	rec, err := uc.assembler.Assemble(ctx, companyID, req.kind, req.id)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.render(ctx, uc.canvas, "pdf", rec, SurfaceDownload)
	if err != nil {
		return nil, err
	}

	if req.action == dto.ActionDownload {
		return &dto.GenerateDocumentResponse{
			Success:        true,
			PDFBase64:      base64.StdEncoding.EncodeToString(pdf.Data),
			DocumentNumber: rec.Document.Number,
		}, nil
	}
	return uc.email(ctx, rec, pdf, req.recipient)
}

// Preview devuelve el HTML del documento (superficie de descarga).
func (uc *GenerateUseCase) Preview(ctx context.Context, companyID, kindParam, id string) (string, error) {
	kind, err := entity.ParseDocumentKind(kindParam)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "type", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "id", err)
	}
	rec, err := uc.assembler.Assemble(ctx, companyID, kind, id)
	if err != nil {
		return "", err
	}
	out, err := uc.render(ctx, uc.markup, "html", rec, SurfaceDownload)
	if err != nil {
		return "", err
	}
	return string(out.Data), nil
}

func (uc *GenerateUseCase) email(ctx context.Context, rec *Record, pdf *Artifact, recipient string) (*dto.GenerateDocumentResponse, error) {
	body, err := uc.render(ctx, uc.markup, "html", rec, SurfaceEmail)
	if err != nil {
		return nil, err
	}

	doc := rec.Document
	msg := Email{
		To:      recipient,
		Subject: emailSubject(rec),
		HTML:    string(body.Data),
		Attachments: []Attachment{{
			Filename:    attachmentName(doc),
			ContentType: "application/pdf",
			Data:        pdf.Data,
		}},
	}
	if rec.Company != nil && rec.Company.Email != "" {
		msg.ReplyTo = rec.Company.Email
	}

	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.metrics.IncEmail(string(rec.Kind), "failed")
		uc.log.Error().Err(err).Str("kind", string(rec.Kind)).Str("document_id", doc.ID).Msg("envío de correo fallido")
		return nil, domain.WrapError(domain.ErrDeliveryFailed, "enviar "+string(rec.Kind), err)
	}
	uc.metrics.IncEmail(string(rec.Kind), "sent")

	// Solo quotes/invoices en borrador avanzan a "sent". El UPDATE es condicional,
	// así que un reenvío no produce una segunda transición.
	if doc.CanBeMarkedSent() {
		changed, err := uc.docs.MarkSent(ctx, rec.Kind, doc.ID)
		if err != nil {
			// El correo ya salió: se registra pero no se reporta como fallo.
			uc.log.Error().Err(err).Str("document_id", doc.ID).Msg("no se pudo marcar el documento como enviado")
		} else if changed {
			doc.Status = entity.StatusSent
		}
	}

	return &dto.GenerateDocumentResponse{
		Success: true,
		Message: fmt.Sprintf("%s sent successfully to %s", rec.Kind.Label(), recipient),
	}, nil
}

func (uc *GenerateUseCase) render(ctx context.Context, r DocumentRenderer, mode string, rec *Record, surface Surface) (*Artifact, error) {
	start := time.Now()
	out, err := r.Render(ctx, rec, surface)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", mode, err)
	}
	uc.metrics.ObserveRender(string(rec.Kind), mode, time.Since(start))
	for _, asset := range out.MissingAssets {
		uc.metrics.IncAssetUnavailable(asset)
	}
	if out.Dropped > 0 {
		uc.log.Warn().
			Str("kind", string(rec.Kind)).
			Str("document_id", rec.Document.ID).
			Int("dropped", out.Dropped).
			Msg("contenido descartado por falta de espacio")
	}
	return out, nil
}

func emailSubject(rec *Record) string {
	subject := rec.Kind.Label() + " " + rec.Document.DisplayNumber()
	if name := rec.CompanyName(); name != "" {
		subject += " from " + name
	}
	return subject
}

// attachmentName "<número>.pdf"; sin número se usa el id. Todo lo que no sea
// letra, dígito, punto, guion o guion bajo pasa a "-".
func attachmentName(doc *entity.Document) string {
	base := strings.TrimSpace(doc.Number)
	if base == "" {
		base = doc.ID
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, ".")
	if base == "" {
		base = "document"
	}
	return base + ".pdf"
}
