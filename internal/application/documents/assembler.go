package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// PhotoURLTTL validez de los signed URLs de fotos privadas.
const PhotoURLTTL = 10 * time.Minute

// Repositories agrupa los puertos de lectura que usa el ensamblador.
type Repositories struct {
	Documents  repository.DocumentRepository
	Companies  repository.CompanyRepository
	Customers  repository.CustomerRepository
	Users      repository.UserRepository
	Signatures repository.SignatureRepository
	Photos     repository.PhotoRepository
}

// Assembler reúne documento, líneas, empresa, cliente, asignado, firma y fotos
// en un Record. Solo el documento principal es obligatorio: el resto se omite
// (con log) si falta o falla.
type Assembler struct {
	repos   Repositories
	urls    URLResolver
	metrics Recorder
	log     zerolog.Logger
}

// NewAssembler construye el ensamblador. metrics puede ser nil.
func NewAssembler(repos Repositories, urls URLResolver, metrics Recorder, log zerolog.Logger) *Assembler {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Assembler{repos: repos, urls: urls, metrics: metrics, log: log}
}

// Assemble carga el snapshot del documento.
//
// Retorna:
//   - domain.ErrNotFound   si el documento no existe.
//   - domain.ErrForbidden  si pertenece a otra empresa que la del token.
func (a *Assembler) Assemble(ctx context.Context, companyID string, kind entity.DocumentKind, id string) (*Record, error) {
	// ── 1. Documento principal (único dato obligatorio) ───────────────────────
	doc, err := a.repos.Documents.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("assembler: obtener %s: %w", kind, err)
	}
	if doc == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "assembler: "+string(kind)+" "+id, nil)
	}
	if companyID != "" && doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	doc.Kind = kind

	log := a.log.With().Str("kind", string(kind)).Str("document_id", id).Logger()
	rec := &Record{
		Kind:        kind,
		Document:    doc,
		Preferences: entity.DefaultRenderPreferences(),
	}

	// ── 2. Líneas ─────────────────────────────────────────────────────────────
	items, err := a.repos.Documents.ListLineItems(ctx, kind, id)
	if err != nil {
		a.partial(log, "line_items", err)
	} else {
		rec.Items = items
	}
	rec.Totals = entity.ComputeTotals(doc, rec.Items)

	// ── 3. Empresa, preferencias y redes sociales ─────────────────────────────
	a.loadCompany(ctx, log, rec)

	// ── 4. Cliente ────────────────────────────────────────────────────────────
	if doc.CustomerID != "" {
		customer, err := a.repos.Customers.GetByID(ctx, doc.CustomerID)
		switch {
		case err != nil:
			a.partial(log, "customer", err)
		case customer == nil:
			a.partial(log, "customer", domain.ErrNotFound)
		default:
			rec.Customer = customer
		}
	}

	// ── 5. Técnico asignado (solo jobs) ───────────────────────────────────────
	if kind == entity.KindJob && doc.AssignedTo != "" {
		user, err := a.repos.Users.GetByID(ctx, doc.AssignedTo)
		switch {
		case err != nil:
			a.partial(log, "assignee", err)
		case user == nil:
			a.partial(log, "assignee", domain.ErrNotFound)
		default:
			rec.Assignee = user
		}
	}

	// ── 6. Firma ──────────────────────────────────────────────────────────────
	if doc.SignatureID != "" {
		sig, err := a.repos.Signatures.GetByID(ctx, doc.SignatureID)
		switch {
		case err != nil:
			a.partial(log, "signature", err)
		case sig == nil:
			a.partial(log, "signature", domain.ErrNotFound)
		default:
			rec.Signature = sig
		}
	}

	// ── 7. Fotos (job propio o job vinculado) ─────────────────────────────────
	jobID := doc.JobID
	if kind == entity.KindJob {
		jobID = doc.ID
	}
	if jobID != "" && rec.Preferences.PhotosEnabled(kind) {
		rec.Photos = a.loadPhotos(ctx, log, jobID)
	}

	return rec, nil
}

func (a *Assembler) loadCompany(ctx context.Context, log zerolog.Logger, rec *Record) {
	companyID := rec.Document.CompanyID
	company, err := a.repos.Companies.GetByID(ctx, companyID)
	switch {
	case err != nil:
		a.partial(log, "company", err)
	case company == nil:
		a.partial(log, "company", domain.ErrNotFound)
	default:
		rec.Company = company
		if company.LogoPath != "" {
			rec.LogoURL = a.publicURL(company.LogoPath)
		}
	}

	settings, err := a.repos.Companies.GetSettings(ctx, companyID)
	if err != nil {
		a.partial(log, "settings", err)
	} else {
		rec.Preferences = settings.Preferences()
	}

	links, err := a.repos.Companies.ListSocialLinks(ctx, companyID)
	if err != nil {
		a.partial(log, "social_links", err)
		return
	}
	for i := range links {
		if links[i].IconPath != "" {
			links[i].IconURL = a.publicURL(links[i].IconPath)
		}
	}
	rec.SocialLinks = links
}

// loadPhotos resuelve un signed URL por foto; una foto sin URL se descarta sola.
func (a *Assembler) loadPhotos(ctx context.Context, log zerolog.Logger, jobID string) []entity.Photo {
	photos, err := a.repos.Photos.ListByJob(ctx, jobID)
	if err != nil {
		a.partial(log, "photos", err)
		return nil
	}
	out := make([]entity.Photo, 0, len(photos))
	for _, p := range photos {
		if isAbsoluteURL(p.StoragePath) {
			p.URL = p.StoragePath
			out = append(out, p)
			continue
		}
		signed, err := a.urls.SignedURL(ctx, p.StoragePath, PhotoURLTTL)
		if err != nil {
			a.metrics.IncAssetUnavailable("photo")
			log.Warn().Err(err).Str("asset", "photo").Str("path", p.StoragePath).Msg("no se pudo firmar la URL de la foto")
			continue
		}
		p.URL = signed
		out = append(out, p)
	}
	return out
}

func (a *Assembler) publicURL(path string) string {
	if isAbsoluteURL(path) {
		return path
	}
	return a.urls.PublicURL(path)
}

func (a *Assembler) partial(log zerolog.Logger, field string, err error) {
	a.metrics.IncPartialData(field)
	log.Warn().
		Err(domain.WrapError(domain.ErrPartialData, field, err)).
		Str("field", field).
		Msg("dato secundario no disponible, se omite")
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
