package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// documentTable tabla, columna de numeración y tabla de líneas de cada tipo.
type documentTable struct {
	table      string
	number     string
	lines      string
	foreignKey string
}

var documentTables = map[entity.DocumentKind]documentTable{
	entity.KindQuote:   {table: "quotes", number: "quote_number", lines: "quote_line_items", foreignKey: "quote_id"},
	entity.KindInvoice: {table: "invoices", number: "invoice_number", lines: "invoice_line_items", foreignKey: "invoice_id"},
	entity.KindJob:     {table: "jobs", number: "job_number", lines: "job_line_items", foreignKey: "job_id"},
}

func tableFor(kind entity.DocumentKind) (documentTable, error) {
	t, ok := documentTables[kind]
	if !ok {
		return documentTable{}, fmt.Errorf("tipo de documento sin tabla: %q", kind)
	}
	return t, nil
}

// DocumentRepo lectura de quotes, invoices y jobs (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Columnas comunes a los tres tipos. %s = columna de numeración.
const documentColumns = `
	id::text, company_id::text, COALESCE(customer_id::text, ''), COALESCE(%s, ''), created_at,
	COALESCE(subtotal, 0), COALESCE(tax_amount, 0),
	COALESCE(discount_type, 'percentage'), COALESCE(discount_value, 0), COALESCE(total, 0),
	COALESCE(status, ''), COALESCE(notes, ''), COALESCE(signature_id::text, '')`

// GetByID obtiene el documento; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	common := fmt.Sprintf(documentColumns, t.number)

	var (
		doc  = entity.Document{Kind: kind}
		dest = []any{
			&doc.ID, &doc.CompanyID, &doc.CustomerID, &doc.Number, &doc.CreatedAt,
			&doc.Subtotal, &doc.TaxAmount,
			&doc.DiscountType, &doc.DiscountValue, &doc.Total,
			&doc.Status, &doc.Notes, &doc.SignatureID,
		}
		query string
	)

	switch kind {
	case entity.KindQuote:
		query = `SELECT ` + common + `, valid_until, COALESCE(job_id::text, '') FROM quotes WHERE id = $1`
		dest = append(dest, &doc.ValidUntil, &doc.JobID)
	case entity.KindInvoice:
		query = `SELECT ` + common + `, due_date, COALESCE(job_id::text, ''), COALESCE(late_fee_amount, 0) FROM invoices WHERE id = $1`
		dest = append(dest, &doc.DueDate, &doc.JobID, &doc.LateFeeAmount)
	case entity.KindJob:
		query = `SELECT ` + common + `,
			COALESCE(title, ''), COALESCE(description, ''), COALESCE(priority, ''),
			COALESCE(assigned_to::text, ''),
			scheduled_start, scheduled_end, actual_start, actual_end,
			COALESCE(service_street, ''), COALESCE(service_city, ''),
			COALESCE(service_state, ''), COALESCE(service_zip, '')
		FROM jobs WHERE id = $1`
		dest = append(dest,
			&doc.Title, &doc.Description, &doc.Priority,
			&doc.AssignedTo,
			&doc.ScheduledStart, &doc.ScheduledEnd, &doc.ActualStart, &doc.ActualEnd,
			&doc.ServiceAddress.Street, &doc.ServiceAddress.City,
			&doc.ServiceAddress.State, &doc.ServiceAddress.Zip,
		)
	}

	if err := r.q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return &doc, nil
}

// ListLineItems líneas del documento en orden de creación.
func (r *DocumentRepo) ListLineItems(ctx context.Context, kind entity.DocumentKind, documentID string) ([]entity.LineItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id::text, %[1]s::text, COALESCE(description, ''), COALESCE(quantity, 0)::int, COALESCE(unit_price, 0)
		FROM %[2]s
		WHERE %[1]s = $1
		ORDER BY created_at, id`, t.foreignKey, t.lines)

	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.lines, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.LineItem, error) {
		var li entity.LineItem
		err := row.Scan(&li.ID, &li.DocumentID, &li.Description, &li.Quantity, &li.UnitPrice)
		return li, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.lines, err)
	}
	return items, nil
}

// MarkSent UPDATE condicional draft → sent. Los jobs no tienen ese ciclo.
func (r *DocumentRepo) MarkSent(ctx context.Context, kind entity.DocumentKind, id string) (bool, error) {
	if kind == entity.KindJob {
		return false, nil
	}
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`, t.table)
	tag, err := r.q.Exec(ctx, query, id, entity.StatusSent, entity.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("mark %s sent: %w", kind, err)
	}
	return tag.RowsAffected() == 1, nil
}
