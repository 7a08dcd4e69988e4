// Package render turns paginated products, geometry and a color scheme into
// one self-contained printable HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"catalog-studio/layout"
	"catalog-studio/models"
	"catalog-studio/utils"
)

//go:embed templates/catalog.html
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog.html"))

// Render computes geometry, colors, typography and pages for t and emits the document
func Render(products []models.Product, business models.BusinessInfo, t models.TemplateDefinition) (*models.Document, error) {
	return Compose(Prepare(products, business, t))
}

// Prepare runs the layout stage: geometry, colors, typography and pagination
func Prepare(products []models.Product, business models.BusinessInfo, t models.TemplateDefinition) Input {
	return Input{
		Pages:      layout.Paginate(products, t.PageSize()),
		Geometry:   layout.Dimensions(t),
		Scheme:     layout.ResolveColors(t),
		Typography: layout.Typography(t),
		Business:   business,
		Template:   t,
	}
}

// Input is everything the document composer needs
type Input struct {
	Pages      []models.Page
	Geometry   models.Geometry
	Scheme     models.ColorScheme
	Typography models.Typography
	Business   models.BusinessInfo
	Template   models.TemplateDefinition
}

// Compose emits the document for already computed pages, geometry and scheme
func Compose(in Input) (*models.Document, error) {
	fit := ImageFitFor(in.Template.Industry)
	view := buildView(in, fit)

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, view); err != nil {
		return nil, errors.Wrap(err, "execute catalog template")
	}

	productCount := 0
	for _, page := range in.Pages {
		for _, slot := range page.Slots {
			if !slot.Placeholder && slot.Product != nil {
				productCount++
			}
		}
	}

	return &models.Document{
		Title:        view.Title,
		HTML:         buf.String(),
		PageCount:    len(in.Pages),
		ProductCount: productCount,
		Geometry:     in.Geometry,
		Scheme:       in.Scheme,
		Typography:   in.Typography,
		ImageFit:     fit,
	}, nil
}

type documentView struct {
	Title      string
	Stylesheet template.CSS
	Header     headerView
	Pages      []pageView
	Footer     footerView
	Visual     models.VisualFlags
	Columns    int
}

type headerView struct {
	Name    string
	Tagline string
	Logo    imageSource
}

type pageView struct {
	Number      int
	BreakBefore bool
	First, Last bool
	Cells       []cellView
}

type cellView struct {
	Placeholder bool
	ID          string
	Name        string
	Category    string
	Price       string
	Wholesale   string
	MinQty      string
	Description string
	SKU         string
	Specs       string
	Image       imageSource
}

type contactChip struct {
	Kind  string
	Label string
	Href  template.URL
}

type footerView struct {
	Chips       []contactChip
	Attribution string
}

// imageSource is a sanitized image reference; Src is nil when unusable
type imageSource struct {
	Src any
	Alt string
}

func (i imageSource) Present() bool {
	return i.Src != nil
}

func buildView(in Input, fit models.ImageFit) documentView {
	t := in.Template
	symbol := in.Business.CurrencySymbol

	name := strings.TrimSpace(in.Business.Name)
	title := "Catalog"
	if name != "" {
		title = name + " Catalog"
	}

	pages := make([]pageView, 0, len(in.Pages))
	for i, page := range in.Pages {
		cells := make([]cellView, 0, len(page.Slots))
		for _, slot := range page.Slots {
			if slot.Placeholder || slot.Product == nil {
				cells = append(cells, cellView{Placeholder: true})
				continue
			}
			cells = append(cells, buildCell(*slot.Product, t.Content, symbol))
		}
		pages = append(pages, pageView{
			Number:      page.Number,
			BreakBefore: page.BreakBefore,
			First:       i == 0,
			Last:        i == len(in.Pages)-1,
			Cells:       cells,
		})
	}

	return documentView{
		Title:      title,
		Stylesheet: stylesheet(in, fit),
		Header: headerView{
			Name:    name,
			Tagline: strings.TrimSpace(in.Business.Tagline),
			Logo:    sanitizeImage(in.Business.LogoURL, name),
		},
		Pages:   pages,
		Footer:  buildFooter(in.Business),
		Visual:  t.Visual,
		Columns: in.Geometry.Columns,
	}
}

func buildCell(p models.Product, c models.ContentFlags, symbol string) cellView {
	cell := cellView{
		ID:    p.ID,
		Name:  p.Name,
		Price: utils.FormatMoney(p.Price, symbol),
		Image: sanitizeImage(p.ImageURL, p.Name),
	}
	if c.ShowCategory {
		cell.Category = strings.TrimSpace(p.Category)
	}
	if c.ShowWholesalePrice && p.HasWholesale() {
		cell.Wholesale = utils.FormatMoney(*p.WholesalePrice, symbol)
		if c.ShowWholesaleMinQty && p.WholesaleMinQty > 0 {
			cell.MinQty = strconv.Itoa(p.WholesaleMinQty)
		}
	}
	if c.ShowDescription {
		cell.Description = strings.TrimSpace(p.Description)
	}
	if c.ShowSKU {
		cell.SKU = strings.TrimSpace(p.SKU)
	}
	if c.ShowSpecifications {
		cell.Specs = strings.TrimSpace(p.Specifications)
	}
	return cell
}

func buildFooter(b models.BusinessInfo) footerView {
	var chips []contactChip
	if v := strings.TrimSpace(b.Phone); v != "" {
		chips = append(chips, contactChip{Kind: "phone", Label: v, Href: template.URL("tel:" + strings.ReplaceAll(v, " ", ""))})
	}
	if v := strings.TrimSpace(b.Email); v != "" {
		chips = append(chips, contactChip{Kind: "email", Label: v, Href: template.URL("mailto:" + v)})
	}
	if v := strings.TrimSpace(b.Website); v != "" {
		href := v
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			href = "https://" + href
		}
		chips = append(chips, contactChip{Kind: "website", Label: v, Href: template.URL(href)})
	}
	if v := strings.TrimSpace(b.Address); v != "" {
		chips = append(chips, contactChip{Kind: "address", Label: v})
	}
	return footerView{Chips: chips, Attribution: "Product catalog"}
}

// sanitizeImage accepts http(s), root-relative and inline image data references.
// Anything else is treated as a missing image so nothing renders broken.
func sanitizeImage(ref, alt string) imageSource {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return imageSource{}
	case strings.HasPrefix(ref, "data:image/"):
		return imageSource{Src: template.URL(ref), Alt: alt}
	case strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "/"):
		return imageSource{Src: ref, Alt: alt}
	default:
		return imageSource{}
	}
}

func stylesheet(in Input, fit models.ImageFit) template.CSS {
	g, s, ty := in.Geometry, in.Scheme, in.Typography
	radius := in.Template.Visual.BorderRadius
	if radius < 0 {
		radius = 0
	}

	shadow := "none"
	if in.Template.Visual.Shadows {
		shadow = "0 1mm 2.5mm rgba(0, 0, 0, 0.12)"
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	vars := []struct {
		name, value string
	}{
		{"page-width", mm(g.PageWidth)},
		{"page-height", mm(g.PageHeight)},
		{"page-margin", mm(g.Margin)},
		{"content-width", mm(g.ContentWidth)},
		{"content-height", mm(g.ContentHeight)},
		{"grid-gap", mm(g.Gap)},
		{"grid-columns", strconv.Itoa(g.Columns)},
		{"card-width", mm(g.CardWidth)},
		{"card-height", mm(g.CardHeight)},
		{"image-height", mm(g.ImageHeight)},
		{"text-height", mm(g.TextHeight)},
		{"card-radius", strconv.Itoa(radius) + "px"},
		{"card-shadow", shadow},
		{"image-fit", string(fit)},
		{"color-primary", s.Primary},
		{"color-secondary", s.Secondary},
		{"color-accent", s.Accent},
		{"color-background", s.Background},
		{"color-card", s.CardBackground},
		{"color-text", s.Text},
		{"color-text-muted", s.TextMuted},
		{"color-card-text", s.CardText},
		{"color-border", s.Border},
		{"color-on-primary", s.OnPrimary},
		{"color-on-accent", s.OnAccent},
		{"font-header", pt(ty.Header)},
		{"font-title", pt(ty.Title)},
		{"font-price", pt(ty.Price)},
		{"font-description", pt(ty.Description)},
		{"font-info", pt(ty.Info)},
		{"name-lines", strconv.Itoa(ty.NameLines)},
		{"description-lines", strconv.Itoa(ty.DescriptionLines)},
		{"specs-max-height", mm(ty.SpecsMaxHeight)},
	}
	for _, v := range vars {
		fmt.Fprintf(&b, "  --%s: %s;\n", v.name, v.value)
	}
	b.WriteString("}\n")
	return template.CSS(b.String())
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
