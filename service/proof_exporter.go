package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"

	"catalog-studio/layout"
	"catalog-studio/models"
	"catalog-studio/render"
	"catalog-studio/utils"
)

const proofCaptionSize = 7

// ProofExporter draws the computed grid with gofpdf, without a browser.
// Radius, shadows and decorations are not reproduced; the proof is for
// checking placement, text and prices.
type ProofExporter struct{}

// NewProofExporter creates a ProofExporter
func NewProofExporter() *ProofExporter {
	return &ProofExporter{}
}

// Proof renders one PDF page per catalog page
func (p *ProofExporter) Proof(in render.Input) ([]byte, error) {
	g := in.Geometry
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	title := "Catalog"
	if name := strings.TrimSpace(in.Business.Name); name != "" {
		title = name + " Catalog"
	}
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scheme := in.Scheme
	images := 0
	for _, pg := range in.Pages {
		pdf.AddPage()
		fill(pdf, scheme.Background)
		pdf.Rect(0, 0, g.PageWidth, g.PageHeight, "F")

		for i, slot := range pg.Slots {
			if slot.Placeholder || slot.Product == nil {
				continue
			}
			col, row := i%g.Columns, i/g.Columns
			x := g.Margin + float64(col)*(g.CardWidth+g.Gap)
			y := g.Margin + float64(row)*(g.CardHeight+g.Gap)
			images += p.card(pdf, tr, in, *slot.Product, proofImageName(pg.Number, i), x, y)
		}

		pdf.SetFont("Helvetica", "", proofCaptionSize)
		text(pdf, scheme.TextMuted)
		pdf.SetXY(g.Margin, g.PageHeight-g.Margin/2-2)
		pdf.CellFormat(g.ContentWidth, 4,
			tr(fmt.Sprintf("%s  %d / %d", title, pg.Number, len(in.Pages))),
			"", 0, "R", false, 0, "")
	}
	if len(in.Pages) == 0 {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrapf(err, "write proof (%d images)", images)
	}
	return buf.Bytes(), nil
}

// card draws one product card and reports whether an image was placed
func (p *ProofExporter) card(pdf *gofpdf.Fpdf, tr func(string) string, in render.Input, prod models.Product, imageName string, x, y float64) int {
	g, s, ty := in.Geometry, in.Scheme, in.Typography
	pad := 2.0

	fill(pdf, s.CardBackground)
	draw(pdf, s.Border)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, g.CardWidth, g.CardHeight, "FD")

	placed := 0
	if !placeImage(pdf, imageName, prod.ImageURL, x, y, g.CardWidth, g.ImageHeight) {
		pdf.SetFont("Helvetica", "I", ty.Info)
		text(pdf, s.TextMuted)
		pdf.SetXY(x, y+g.ImageHeight/2-2)
		pdf.CellFormat(g.CardWidth, 4, "No image", "", 0, "C", false, 0, "")
	} else {
		placed = 1
	}

	cy := y + g.ImageHeight + pad
	w := g.CardWidth - 2*pad

	if in.Template.Content.ShowCategory && prod.Category != "" {
		pdf.SetFont("Helvetica", "", ty.Info)
		text(pdf, s.Primary)
		pdf.SetXY(x+pad, cy)
		pdf.CellFormat(w, ptToMM(ty.Info)+1, clip(pdf, tr(strings.ToUpper(prod.Category)), w), "", 0, "L", false, 0, "")
		cy += ptToMM(ty.Info) + 1
	}

	pdf.SetFont("Helvetica", "B", ty.Title)
	text(pdf, s.CardText)
	pdf.SetXY(x+pad, cy)
	pdf.CellFormat(w, ptToMM(ty.Title)+1, clip(pdf, tr(prod.Name), w), "", 0, "L", false, 0, "")
	cy += ptToMM(ty.Title) + 1.5

	pdf.SetFont("Helvetica", "B", ty.Price)
	text(pdf, s.Primary)
	pdf.SetXY(x+pad, cy)
	pdf.CellFormat(w, ptToMM(ty.Price)+1, tr(utils.FormatMoney(prod.Price, in.Business.CurrencySymbol)), "", 0, "L", false, 0, "")
	cy += ptToMM(ty.Price) + 1.5

	c := in.Template.Content
	if c.ShowWholesalePrice && prod.HasWholesale() {
		label := "Wholesale " + utils.FormatMoney(*prod.WholesalePrice, in.Business.CurrencySymbol)
		if c.ShowWholesaleMinQty && prod.WholesaleMinQty > 0 {
			label += fmt.Sprintf(" (min %d)", prod.WholesaleMinQty)
		}
		pdf.SetFont("Helvetica", "", ty.Info)
		text(pdf, s.TextMuted)
		pdf.SetXY(x+pad, cy)
		pdf.CellFormat(w, ptToMM(ty.Info)+1, clip(pdf, tr(label), w), "", 0, "L", false, 0, "")
		cy += ptToMM(ty.Info) + 1
	}

	if c.ShowSKU && prod.SKU != "" && cy < y+g.CardHeight-pad {
		pdf.SetFont("Courier", "", ty.Info)
		text(pdf, s.TextMuted)
		pdf.SetXY(x+pad, cy)
		pdf.CellFormat(w, ptToMM(ty.Info)+1, clip(pdf, tr("SKU "+prod.SKU), w), "", 0, "L", false, 0, "")
	}

	return placed
}

// proofImageName keys a registered image by its slot; gofpdf caches images by name.
func proofImageName(page, slot int) string {
	return fmt.Sprintf("p%d-s%d", page, slot)
}

// placeImage draws an inline data URI image contained in the image box
func placeImage(pdf *gofpdf.Fpdf, name, ref string, x, y, w, h float64) bool {
	mime, data, ok := decodeDataURI(ref)
	if !ok {
		return false
	}

	var imgType string
	switch mime {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imgType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if info == nil || !pdf.Ok() {
		pdf.ClearError()
		return false
	}

	iw, ih := info.Width(), info.Height()
	if iw <= 0 || ih <= 0 {
		return false
	}
	scale := min(w/iw, h/ih)
	dw, dh := iw*scale, ih*scale
	pdf.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
	return true
}

func decodeDataURI(ref string) (string, []byte, bool) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "", nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, false
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mime, data, true
}

// clip shortens an already translated string with an ellipsis until it fits
// width w in the current font. Translated text is single-byte encoded.
func clip(pdf *gofpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	b := []byte(s)
	for len(b) > 1 && pdf.GetStringWidth(string(b)+"...") > w {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}

func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

func fill(pdf *gofpdf.Fpdf, hex string) {
	c, _ := layout.ParseHex(hex)
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func draw(pdf *gofpdf.Fpdf, hex string) {
	c, _ := layout.ParseHex(hex)
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func text(pdf *gofpdf.Fpdf, hex string) {
	c, _ := layout.ParseHex(hex)
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
