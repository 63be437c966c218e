package documents_test

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de puertos
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID  = "11111111-1111-4111-8111-111111111111"
	customerID = "22222222-2222-4222-8222-222222222222"
	quoteID    = "33333333-3333-4333-8333-333333333333"
	invoiceID  = "44444444-4444-4444-8444-444444444444"
	jobID      = "55555555-5555-4555-8555-555555555555"
	userID     = "66666666-6666-4666-8666-666666666666"
	sigID      = "77777777-7777-4777-8777-777777777777"
)

type fakeDocs struct {
	docs      map[string]*entity.Document
	items     map[string][]entity.LineItem
	itemsErr  error
	markErr   error
	gets      int
	markCalls []string
}

func (f *fakeDocs) GetByID(_ context.Context, _ entity.DocumentKind, id string) (*entity.Document, error) {
	f.gets++
	d, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocs) ListLineItems(_ context.Context, _ entity.DocumentKind, id string) ([]entity.LineItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items[id], nil
}

// MarkSent imita el UPDATE condicional: solo transiciona desde draft.
func (f *fakeDocs) MarkSent(_ context.Context, _ entity.DocumentKind, id string) (bool, error) {
	f.markCalls = append(f.markCalls, id)
	if f.markErr != nil {
		return false, f.markErr
	}
	d := f.docs[id]
	if d == nil || d.Status != entity.StatusDraft {
		return false, nil
	}
	d.Status = entity.StatusSent
	return true, nil
}

type fakeCompanies struct {
	company  *entity.Company
	settings *entity.CompanySettings
	links    []entity.SocialLink
	err      error
}

func (f *fakeCompanies) GetByID(context.Context, string) (*entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

func (f *fakeCompanies) GetSettings(context.Context, string) (*entity.CompanySettings, error) {
	return f.settings, nil
}

func (f *fakeCompanies) ListSocialLinks(context.Context, string) ([]entity.SocialLink, error) {
	return f.links, nil
}

type fakeCustomers struct {
	customer *entity.Customer
	err      error
}

func (f *fakeCustomers) GetByID(context.Context, string) (*entity.Customer, error) {
	return f.customer, f.err
}

type fakeUsers struct{ user *entity.User }

func (f *fakeUsers) GetByID(context.Context, string) (*entity.User, error) { return f.user, nil }

type fakeSignatures struct{ sig *entity.Signature }

func (f *fakeSignatures) GetByID(context.Context, string) (*entity.Signature, error) {
	return f.sig, nil
}

type fakePhotos struct {
	photos []entity.Photo
	calls  int
}

func (f *fakePhotos) ListByJob(context.Context, string) ([]entity.Photo, error) {
	f.calls++
	return f.photos, nil
}

// fakeResolver firma todo salvo las rutas en failing.
type fakeResolver struct {
	failing map[string]bool
	ttls    []time.Duration
}

func (f *fakeResolver) PublicURL(path string) string { return "https://public.test/" + path }

func (f *fakeResolver) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	f.ttls = append(f.ttls, ttl)
	if f.failing[path] {
		return "", errors.New("signing failed")
	}
	return "https://private.test/" + path + "?sig=1", nil
}

// fakeRenderer devuelve data fija y guarda las superficies pedidas.
type fakeRenderer struct {
	data     string
	err      error
	surfaces []documents.Surface
	last     *documents.Record
	missing  []string
}

func (f *fakeRenderer) Render(_ context.Context, rec *documents.Record, s documents.Surface) (*documents.Artifact, error) {
	f.surfaces = append(f.surfaces, s)
	f.last = rec
	if f.err != nil {
		return nil, f.err
	}
	return &documents.Artifact{ContentType: "application/octet-stream", Data: []byte(f.data), MissingAssets: f.missing}, nil
}

type fakeMailer struct {
	err  error
	sent []documents.Email
}

func (f *fakeMailer) Send(_ context.Context, msg documents.Email) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeRecorder struct {
	renders []string
	emails  []string
	assets  []string
	partial []string
}

func (f *fakeRecorder) ObserveRender(kind, mode string, _ time.Duration) {
	f.renders = append(f.renders, kind+"/"+mode)
}
func (f *fakeRecorder) IncEmail(kind, result string)     { f.emails = append(f.emails, kind+"/"+result) }
func (f *fakeRecorder) IncAssetUnavailable(asset string) { f.assets = append(f.assets, asset) }
func (f *fakeRecorder) IncPartialData(field string)      { f.partial = append(f.partial, field) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	docs      *fakeDocs
	companies *fakeCompanies
	customers *fakeCustomers
	users     *fakeUsers
	sigs      *fakeSignatures
	photos    *fakePhotos
	resolver  *fakeResolver
	canvas    *fakeRenderer
	markup    *fakeRenderer
	mailer    *fakeMailer
	metrics   *fakeRecorder
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() *fixture {
	created := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	return &fixture{
		docs: &fakeDocs{
			docs: map[string]*entity.Document{
				quoteID: {
					ID: quoteID, CompanyID: companyID, CustomerID: customerID,
					Kind: entity.KindQuote, Number: "Q-1001", CreatedAt: created,
					Subtotal: money("100"), TaxAmount: money("8"),
					DiscountType: entity.DiscountPercentage, DiscountValue: money("10"),
					Status: entity.StatusDraft, JobID: jobID,
				},
				invoiceID: {
					ID: invoiceID, CompanyID: companyID, CustomerID: customerID,
					Kind: entity.KindInvoice, Number: "INV-2002", CreatedAt: created,
					Subtotal: money("250"), Status: entity.StatusSent, SignatureID: sigID,
				},
				jobID: {
					ID: jobID, CompanyID: companyID, CustomerID: customerID,
					Kind: entity.KindJob, Number: "JOB-3003", CreatedAt: created,
					Status: "completed", AssignedTo: userID, Title: "Water heater replacement",
				},
			},
			items: map[string][]entity.LineItem{
				quoteID: {
					{ID: "li-1", DocumentID: quoteID, Description: "Labor", Quantity: 2, UnitPrice: money("30")},
					{ID: "li-2", DocumentID: quoteID, Description: "Parts", Quantity: 1, UnitPrice: money("40")},
				},
			},
		},
		companies: &fakeCompanies{
			company: &entity.Company{ID: companyID, Name: "Acme Plumbing", Email: "billing@acme.test", LogoPath: "acme/logo.png"},
		},
		customers: &fakeCustomers{customer: &entity.Customer{ID: customerID, Name: "Jane Doe", Email: "jane@example.com"}},
		users:     &fakeUsers{user: &entity.User{ID: userID, Name: "Tom Tech"}},
		sigs:      &fakeSignatures{sig: &entity.Signature{ID: sigID, SignerName: "Jane Doe", SignedAt: created, ImageData: "data:image/png;base64,AAAA"}},
		photos: &fakePhotos{photos: []entity.Photo{
			{ID: "p1", JobID: jobID, Type: "before", StoragePath: "jobs/p1.jpg"},
			{ID: "p2", JobID: jobID, Type: "after", StoragePath: "jobs/p2.jpg"},
		}},
		resolver: &fakeResolver{failing: map[string]bool{}},
		canvas:   &fakeRenderer{data: "%PDF-1.3 fake"},
		markup:   &fakeRenderer{data: "<html>doc</html>"},
		mailer:   &fakeMailer{},
		metrics:  &fakeRecorder{},
	}
}

func (f *fixture) assembler() *documents.Assembler {
	return documents.NewAssembler(documents.Repositories{
		Documents:  f.docs,
		Companies:  f.companies,
		Customers:  f.customers,
		Users:      f.users,
		Signatures: f.sigs,
		Photos:     f.photos,
	}, f.resolver, f.metrics, zerolog.Nop())
}

func (f *fixture) useCase() *documents.GenerateUseCase {
	return documents.NewGenerateUseCase(f.assembler(), f.canvas, f.markup, f.mailer, f.docs, f.metrics, zerolog.Nop())
}
