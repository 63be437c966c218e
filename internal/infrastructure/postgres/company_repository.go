package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de lectura de empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id::text, name, COALESCE(logo_url, ''),
		       COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip, ''),
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(website, ''),
		       COALESCE(default_payment_method, ''), payment_terms_days, late_fee_percentage,
		       created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.LogoPath,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.Zip,
		&c.Phone, &c.Email, &c.Website,
		&c.DefaultPaymentMethod, &c.PaymentTermsDays, &c.LateFeePercentage,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// GetSettings fila de company_settings; (nil, nil) si el tenant nunca la creó.
func (r *CompanyRepo) GetSettings(ctx context.Context, companyID string) (*entity.CompanySettings, error) {
	query := `
		SELECT company_id::text,
		       pdf_show_logo, pdf_show_notes, pdf_show_signature, pdf_show_line_item_details,
		       pdf_show_job_photos, pdf_show_quote_photos, pdf_show_invoice_photos,
		       pdf_terms_conditions, pdf_footer_text,
		       email_job_body, email_quote_body, email_invoice_body
		FROM company_settings WHERE company_id = $1`
	var s entity.CompanySettings
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID,
		&s.PDFShowLogo, &s.PDFShowNotes, &s.PDFShowSignature, &s.PDFShowLineItemDetails,
		&s.PDFShowJobPhotos, &s.PDFShowQuotePhotos, &s.PDFShowInvoicePhotos,
		&s.PDFTermsConditions, &s.PDFFooterText,
		&s.EmailJobBody, &s.EmailQuoteBody, &s.EmailInvoiceBody,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &s, nil
}

// ListSocialLinks enlaces del tenant en orden de visualización. Sin tabla
// (instalaciones previas a la funcionalidad) devuelve lista vacía.
func (r *CompanyRepo) ListSocialLinks(ctx context.Context, companyID string) ([]entity.SocialLink, error) {
	query := `
		SELECT id::text, company_id::text, platform, url, COALESCE(icon_url, ''),
		       show_on_invoice, show_on_quote, show_on_job, show_on_email,
		       COALESCE(display_order, 0)
		FROM company_social_links
		WHERE company_id = $1
		ORDER BY display_order, created_at`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list social links: %w", err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SocialLink, error) {
		var l entity.SocialLink
		err := row.Scan(&l.ID, &l.CompanyID, &l.Platform, &l.URL, &l.IconPath,
			&l.ShowOnInvoice, &l.ShowOnQuote, &l.ShowOnJob, &l.ShowOnEmail,
			&l.DisplayOrder)
		return l, err
	})
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan social link: %w", err)
	}
	return links, nil
}
