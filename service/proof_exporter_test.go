package service

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-studio/models"
	"catalog-studio/registry"
	"catalog-studio/render"
)

func TestProof(t *testing.T) {
	def, err := registry.MustBuiltin().Get("pets-playful")
	require.NoError(t, err)

	wholesale := decimal.NewFromInt(38000)
	products := []models.Product{
		{
			ID:              "1",
			Name:            "Impermeable con capucha para perros grandes y medianos",
			Category:        "Ropa",
			Price:           decimal.NewFromInt(45000),
			WholesalePrice:  &wholesale,
			WholesaleMinQty: 6,
			SKU:             "IMP-01",
			ImageURL:        "data:image/png;base64," + base64.StdEncoding.EncodeToString(testImage(t, 40, 30, "png")),
		},
		{ID: "2", Name: "Collar", Price: decimal.NewFromInt(12500), ImageURL: "https://cdn.example.com/collar.jpg"},
		{ID: "3", Name: "Cama", Price: decimal.NewFromInt(99900), ImageURL: "data:image/webp;base64,AAAA"},
	}

	out, err := NewProofExporter().Proof(render.Prepare(products, models.BusinessInfo{Name: "Armario Mascota"}, def))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Subtype /Image")
}

func TestProofEmpty(t *testing.T) {
	def, err := registry.MustBuiltin().Get("fashion-editorial")
	require.NoError(t, err)

	out, err := NewProofExporter().Proof(render.Prepare(nil, models.BusinessInfo{}, def))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDecodeDataURI(t *testing.T) {
	mime, data, ok := decodeDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x")))
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("x"), data)

	for _, ref := range []string{"", "/img.png", "data:image/png,raw", "data:image/png;base64,%%%"} {
		_, _, ok := decodeDataURI(ref)
		assert.False(t, ok, ref)
	}
}

func TestProofImagesWithoutProductIDs(t *testing.T) {
	def, err := registry.MustBuiltin().Get("pets-playful")
	require.NoError(t, err)

	wide := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testImage(t, 100, 20, "png"))
	tall := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testImage(t, 20, 100, "png"))
	products := []models.Product{
		{Name: "Wide", Price: decimal.NewFromInt(1000), ImageURL: wide},
		{Name: "Tall", Price: decimal.NewFromInt(2000), ImageURL: tall},
	}

	out, err := NewProofExporter().Proof(render.Prepare(products, models.BusinessInfo{}, def))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "/Subtype /Image"))
}

func TestPlaceImageKeepsEachSlot(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	wide := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testImage(t, 100, 20, "png"))
	tall := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testImage(t, 20, 100, "png"))
	require.True(t, placeImage(pdf, proofImageName(1, 0), wide, 10, 10, 50, 50))
	require.True(t, placeImage(pdf, proofImageName(1, 1), tall, 70, 10, 50, 50))
	require.NoError(t, pdf.Error())

	first := pdf.GetImageInfo(proofImageName(1, 0))
	second := pdf.GetImageInfo(proofImageName(1, 1))
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Greater(t, first.Width(), first.Height())
	assert.Less(t, second.Width(), second.Height())
	assert.NotEqual(t, proofImageName(1, 0), proofImageName(2, 0))
}

func TestClipMeasuresTranslatedText(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	short := tr("Ñandú")
	assert.Equal(t, short, clip(pdf, short, 100))

	long := tr(strings.Repeat("é", 80))
	out := clip(pdf, long, 30)
	assert.LessOrEqual(t, pdf.GetStringWidth(out), 30.0)
	require.True(t, strings.HasSuffix(out, "..."))
	e := tr("é")
	require.Len(t, e, 1)
	assert.Equal(t, strings.Repeat(e, len(out)-3), strings.TrimSuffix(out, "..."))
}
