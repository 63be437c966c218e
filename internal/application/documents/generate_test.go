package documents_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_ValidaAntesDeLeer(t *testing.T) {
	tests := []struct {
		name string
		in   dto.GenerateDocumentRequest
	}{
		{"tipo desconocido", dto.GenerateDocumentRequest{Type: "receipt", DocumentID: quoteID, Action: "download"}},
		{"id no uuid", dto.GenerateDocumentRequest{Type: "quote", DocumentID: "abc", Action: "download"}},
		{"acción desconocida", dto.GenerateDocumentRequest{Type: "quote", DocumentID: quoteID, Action: "print"}},
		{"email sin destinatario", dto.GenerateDocumentRequest{Type: "quote", DocumentID: quoteID, Action: "email"}},
		{"email mal formado", dto.GenerateDocumentRequest{Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.useCase().Generate(context.Background(), companyID, tt.in)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, f.docs.gets, "no debe leerse nada antes de validar")
			assert.Empty(t, f.mailer.sent)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_DocumentoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "invoice", DocumentID: "99999999-9999-4999-8999-999999999999", Action: "download",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.canvas.surfaces, "sin documento no se renderiza")
}

func TestGenerate_OtraEmpresa(t *testing.T) {
	f := newFixture()
	_, err := f.useCase().Generate(context.Background(), "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "download",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarga
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_DescargaSinMutarEstado(t *testing.T) {
	f := newFixture()
	out, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "download",
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Q-1001", out.DocumentNumber)
	pdf, err := base64.StdEncoding.DecodeString(out.PDFBase64)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(pdf))

	assert.Empty(t, f.docs.markCalls, "la descarga nunca cambia el estado")
	assert.Empty(t, f.mailer.sent)
	assert.Equal(t, entity.StatusDraft, f.docs.docs[quoteID].Status)
	assert.Equal(t, []string{"quote/pdf"}, f.metrics.renders)
}

func TestGenerate_ReportaImagenesFaltantes(t *testing.T) {
	f := newFixture()
	f.canvas.missing = []string{"logo"}
	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "download",
	})
	require.NoError(t, err)
	assert.Contains(t, f.metrics.assets, "logo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_EmailBorradorPasaASent(t *testing.T) {
	f := newFixture()
	out, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "Jane Doe <jane@example.com>",
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Quote sent successfully to jane@example.com", out.Message)
	assert.Empty(t, out.PDFBase64)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "billing@acme.test", msg.ReplyTo)
	assert.Equal(t, "Quote 1001 from Acme Plumbing", msg.Subject)
	assert.Equal(t, "<html>doc</html>", msg.HTML)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "Q-1001.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)

	assert.Equal(t, []documents.Surface{documents.SurfaceEmail}, f.markup.surfaces)
	assert.Equal(t, []string{quoteID}, f.docs.markCalls)
	assert.Equal(t, entity.StatusSent, f.docs.docs[quoteID].Status)
	assert.Equal(t, []string{"quote/sent"}, f.metrics.emails)
}

func TestGenerate_NombreDeAdjuntoSeguro(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"sin número usa el id", "", quoteID + ".pdf"},
		{"barras no forman rutas", "Q/2024/../7", "Q-2024-..-7.pdf"},
		{"espacios y acentos", " Cotización 12 ", "Cotizaci-n-12.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.docs.docs[quoteID].Number = tt.number

			_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
				Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "jane@example.com",
			})
			require.NoError(t, err)
			require.Len(t, f.mailer.sent, 1)
			name := f.mailer.sent[0].Attachments[0].Filename
			assert.Equal(t, tt.want, name)
			assert.NotContains(t, name, "/")
		})
	}
}

func TestGenerate_ReenvioNoTransicionaDosVeces(t *testing.T) {
	f := newFixture()
	uc := f.useCase()
	req := dto.GenerateDocumentRequest{Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "jane@example.com"}

	_, err := uc.Generate(context.Background(), companyID, req)
	require.NoError(t, err)
	_, err = uc.Generate(context.Background(), companyID, req)
	require.NoError(t, err)

	assert.Len(t, f.mailer.sent, 2)
	assert.Len(t, f.docs.markCalls, 1, "el segundo envío encuentra el documento en sent")
}

func TestGenerate_EmailDocumentoYaEnviado(t *testing.T) {
	f := newFixture()
	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "invoice", DocumentID: invoiceID, Action: "email", RecipientEmail: "jane@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, f.mailer.sent, 1)
	assert.Empty(t, f.docs.markCalls)
}

func TestGenerate_JobNuncaTransiciona(t *testing.T) {
	f := newFixture()
	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "job", DocumentID: jobID, Action: "email", RecipientEmail: "jane@example.com",
	})
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "Job Summary 3003 from Acme Plumbing", f.mailer.sent[0].Subject)
	assert.Empty(t, f.docs.markCalls)
	assert.Equal(t, "completed", f.docs.docs[jobID].Status)
}

func TestGenerate_FalloDeEnvio(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("smtp: connection refused")

	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
	assert.Empty(t, f.docs.markCalls, "sin envío no hay cambio de estado")
	assert.Equal(t, entity.StatusDraft, f.docs.docs[quoteID].Status)
	assert.Equal(t, []string{"quote/failed"}, f.metrics.emails)
}

func TestGenerate_FalloAlMarcarNoEsFalloDeEnvio(t *testing.T) {
	f := newFixture()
	f.docs.markErr = errors.New("db down")

	out, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "jane@example.com",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestGenerate_SinEmailDeEmpresaNoHayReplyTo(t *testing.T) {
	f := newFixture()
	f.companies.company.Email = ""

	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "email", RecipientEmail: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, f.mailer.sent[0].ReplyTo)
}

func TestGenerate_ErrorDeRenderSePropaga(t *testing.T) {
	f := newFixture()
	f.canvas.err = errors.New("gofpdf: bad state")

	_, err := f.useCase().Generate(context.Background(), companyID, dto.GenerateDocumentRequest{
		Type: "quote", DocumentID: quoteID, Action: "download",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrDeliveryFailed))
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_HTMLSuperficieDescarga(t *testing.T) {
	f := newFixture()
	html, err := f.useCase().Preview(context.Background(), companyID, "quote", quoteID)
	require.NoError(t, err)

	assert.Equal(t, "<html>doc</html>", html)
	assert.Equal(t, []documents.Surface{documents.SurfaceDownload}, f.markup.surfaces)
	assert.Equal(t, []string{"quote/html"}, f.metrics.renders)
}

func TestPreview_ParametrosInvalidos(t *testing.T) {
	f := newFixture()
	_, err := f.useCase().Preview(context.Background(), companyID, "memo", quoteID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.useCase().Preview(context.Background(), companyID, "quote", "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.docs.gets)
}
