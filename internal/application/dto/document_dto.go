package dto

// Acciones soportadas por POST /api/documents/generate.
const (
	ActionDownload = "download"
	ActionEmail    = "email"
)

// GenerateDocumentRequest body para POST /api/documents/generate.
// RecipientEmail es obligatorio solo si Action = "email".
type GenerateDocumentRequest struct {
	Type           string `json:"type" validate:"required" enums:"quote,invoice,job" example:"invoice"`
	DocumentID     string `json:"documentId" validate:"required,uuid" format:"uuid" example:"3f2a1c9e-8b7d-4e21-9c55-0a1b2c3d4e5f"`
	Action         string `json:"action" validate:"required" enums:"download,email" example:"email"`
	RecipientEmail string `json:"recipientEmail,omitempty" format:"email" example:"jane@example.com"`
}

// GenerateDocumentResponse respuesta exitosa.
//   - download: success + pdfBase64 + documentNumber
//   - email:    success + message
type GenerateDocumentResponse struct {
	Success        bool   `json:"success"`
	PDFBase64      string `json:"pdfBase64,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Message        string `json:"message,omitempty"`
}
