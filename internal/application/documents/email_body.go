package documents

import "strings"

// EmailIntro texto introductorio del correo: plantilla del tenant (o la de
// defecto) con los marcadores reemplazados.
func EmailIntro(rec *Record) string {
	customer := rec.CustomerName()
	if customer == "" {
		customer = "there"
	}
	return strings.NewReplacer(
		"{customer_name}", customer,
		"{company_name}", rec.CompanyName(),
		"{document_number}", rec.Document.DisplayNumber(),
	).Replace(rec.Preferences.EmailBody(rec.Kind))
}
