package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"catalog-studio/metrics"
	"catalog-studio/models"
	"catalog-studio/render"
	"catalog-studio/repository"
)

// ErrNoProducts is returned when a binary export is requested for a catalog without products
var ErrNoProducts = errors.New("catalog has no products")

// ErrUnknownFormat is returned for unsupported output formats
var ErrUnknownFormat = errors.New("unknown output format")

// Format is a catalog output format
type Format string

const (
	FormatHTML  Format = "html"
	FormatPDF   Format = "pdf"
	FormatPNG   Format = "png"
	FormatProof Format = "proof"
)

// ParseFormat validates a format name. Empty means html.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatPDF, FormatPNG, FormatProof:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// PageLink points at one PNG page kept in a session
type PageLink struct {
	Page     int    `json:"page"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Artifact is the result of a render request
type Artifact struct {
	Format      Format
	ContentType string
	Filename    string
	Body        []byte
	Document    *models.Document
	// PNG exports are kept server side and listed here
	SessionID string
	Pages     []PageLink
}

// CatalogService renders catalogs from request data or stored catalogs
type CatalogService struct {
	log       *zap.Logger
	templates *TemplateStore
	repo      repository.CatalogRepositoryInterface
	inliner   *ImageInliner
	exporter  Exporter
	proof     *ProofExporter
	sessions  *PNGSessions
}

// NewCatalogService creates a new CatalogService. repo and inliner may be nil.
func NewCatalogService(
	log *zap.Logger,
	templates *TemplateStore,
	repo repository.CatalogRepositoryInterface,
	inliner *ImageInliner,
	exporter Exporter,
	sessions *PNGSessions,
) *CatalogService {
	return &CatalogService{
		log:       log,
		templates: templates,
		repo:      repo,
		inliner:   inliner,
		exporter:  exporter,
		proof:     NewProofExporter(),
		sessions:  sessions,
	}
}

// Render renders the catalog described by req
func (s *CatalogService) Render(ctx context.Context, req models.RenderRequest, format Format) (*Artifact, error) {
	return s.render(ctx, req.TemplateID, req.Business, req.Products, format)
}

// RenderStored loads a stored catalog and renders it. A non-empty
// templateID overrides the template saved with the catalog.
func (s *CatalogService) RenderStored(ctx context.Context, id, templateID string, format Format) (*Artifact, error) {
	if s.repo == nil {
		return nil, errors.New("catalog store is not configured")
	}
	data, err := s.repo.GetCatalog(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	if templateID == "" {
		templateID = data.TemplateID
	}
	return s.render(ctx, templateID, data.Business, data.Products, format)
}

// PNGPage returns one page of an earlier PNG export
func (s *CatalogService) PNGPage(sessionID string, page int) ([]byte, string, error) {
	data, name, err := s.sessions.Page(sessionID, page)
	if err != nil {
		return nil, "", err
	}
	return data, pageFilename(name, page, len(s.sessions.Pages(sessionID))), nil
}

func (s *CatalogService) render(
	ctx context.Context,
	templateID string,
	business models.BusinessInfo,
	products []models.Product,
	format Format,
) (_ *Artifact, rerr error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if rerr != nil {
			status = "error"
			metrics.ErrorsTotal.WithLabelValues("render_" + string(format)).Inc()
		}
		metrics.RendersTotal.WithLabelValues(string(format), status).Inc()
		metrics.RenderDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	}()

	t, err := s.templates.Get(templateID)
	if err != nil {
		return nil, err
	}
	if format != FormatHTML && len(products) == 0 {
		return nil, ErrNoProducts
	}

	if s.inliner != nil && format != FormatHTML {
		if products, err = s.inliner.InlineProducts(ctx, products); err != nil {
			return nil, err
		}
		business.LogoURL = s.inliner.InlineRef(ctx, business.LogoURL)
	}

	in := render.Prepare(products, business, t)
	doc, err := render.Compose(in)
	if err != nil {
		return nil, errors.Wrap(err, "render document")
	}
	metrics.CatalogPages.Observe(float64(doc.PageCount))

	name := slug(business.Name, t.ID)
	art := &Artifact{Format: format, Document: doc}

	switch format {
	case FormatHTML:
		art.ContentType = "text/html; charset=utf-8"
		art.Filename = fmt.Sprintf("catalog_%s.html", name)
		art.Body = []byte(doc.HTML)
	case FormatPDF:
		if art.Body, err = s.exporter.PDF(ctx, doc); err != nil {
			return nil, errors.Wrap(err, "export pdf")
		}
		art.ContentType = "application/pdf"
		art.Filename = fmt.Sprintf("catalog_%s.pdf", name)
	case FormatProof:
		if art.Body, err = s.proof.Proof(in); err != nil {
			return nil, errors.Wrap(err, "export proof")
		}
		art.ContentType = "application/pdf"
		art.Filename = fmt.Sprintf("catalog_%s_proof.pdf", name)
	case FormatPNG:
		pngs, err := s.exporter.PNG(ctx, doc)
		if err != nil {
			return nil, errors.Wrap(err, "export png")
		}
		art.SessionID = s.sessions.Put(name, pngs)
		for _, n := range s.sessions.Pages(art.SessionID) {
			art.Pages = append(art.Pages, PageLink{
				Page:     n,
				URL:      fmt.Sprintf("/catalog/png-page?session=%s&page=%d", art.SessionID, n),
				Filename: pageFilename(name, n, len(pngs)),
			})
		}
		total := 0
		for _, b := range pngs {
			total += len(b)
		}
		metrics.ExportSize.WithLabelValues(string(format)).Observe(float64(total))
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if len(art.Body) > 0 {
		metrics.ExportSize.WithLabelValues(string(format)).Observe(float64(len(art.Body)))
	}

	s.log.Info("Catalog rendered",
		zap.String("template", t.ID),
		zap.String("format", string(format)),
		zap.Int("products", doc.ProductCount),
		zap.Int("pages", doc.PageCount),
		zap.Duration("duration", time.Since(start)),
	)
	return art, nil
}

func pageFilename(name string, page, total int) string {
	if total <= 1 {
		return fmt.Sprintf("catalog_%s.png", name)
	}
	return fmt.Sprintf("catalog_%s_page_%d.png", name, page)
}

// slug turns a business name into a file name part, falling back to fallback
func slug(name, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return fallback
	}
	return s
}
