package layout

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-studio/models"
)

func tpl(density models.Density, cols, perPage int) models.TemplateDefinition {
	return models.TemplateDefinition{
		ID:              "t",
		Density:         density,
		GridColumns:     cols,
		ProductsPerPage: perPage,
		Palette:         models.Palette{Primary: "#2563eb"},
	}
}

func products(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			ID:    fmt.Sprintf("p%d", i+1),
			Name:  fmt.Sprintf("Product %d", i+1),
			Price: decimal.NewFromInt(int64(10 + i)),
		}
	}
	return out
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name       string
		density    models.Density
		cols       int
		wantMargin float64
		wantGap    float64
		wantWidth  float64
		wantHeight float64
		wantImage  float64
	}{
		{name: "medium 3 columns", density: models.DensityMedium, cols: 3, wantMargin: 12, wantGap: 3.72, wantWidth: 59.52, wantHeight: 79.52, wantImage: 47.71},
		{name: "medium 2 columns clamps to max", density: models.DensityMedium, cols: 2, wantMargin: 12, wantGap: 3.72, wantWidth: 91.14, wantHeight: MaxCardHeight, wantImage: 58.5},
		{name: "high 5 columns uses fixed min gap", density: models.DensityHigh, cols: 5, wantMargin: 8, wantGap: 3, wantWidth: 36.4, wantHeight: 48.4, wantImage: 24.2},
		{name: "medium 10 columns clamps to min", density: models.DensityMedium, cols: 10, wantMargin: 12, wantGap: 3.72, wantWidth: 15.25, wantHeight: MinCardHeight, wantImage: 17.5},
		{name: "unknown density falls back to medium", density: "ultra", cols: 3, wantMargin: 12, wantGap: 3.72, wantWidth: 59.52, wantHeight: 79.52, wantImage: 47.71},
		{name: "zero columns treated as one", density: models.DensityLow, cols: 0, wantMargin: 15, wantGap: 4.5, wantWidth: 180, wantHeight: MaxCardHeight, wantImage: 58.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Dimensions(tpl(tt.density, tt.cols, 6))
			assert.InDelta(t, tt.wantMargin, g.Margin, 0.001)
			assert.InDelta(t, tt.wantGap, g.Gap, 0.001)
			assert.InDelta(t, tt.wantWidth, g.CardWidth, 0.001)
			assert.InDelta(t, tt.wantHeight, g.CardHeight, 0.001)
			assert.InDelta(t, tt.wantImage, g.ImageHeight, 0.001)
			assert.Equal(t, PageWidth, g.PageWidth)
			assert.Equal(t, PageHeight, g.PageHeight)
		})
	}
}

func TestDimensionsInvariants(t *testing.T) {
	for _, d := range []models.Density{models.DensityHigh, models.DensityMedium, models.DensityLow, ""} {
		for cols := -1; cols <= 12; cols++ {
			def := tpl(d, cols, 6)
			g := Dimensions(def)

			assert.Equal(t, g, Dimensions(def), "determinism")
			assert.GreaterOrEqual(t, g.CardHeight, MinCardHeight)
			assert.LessOrEqual(t, g.CardHeight, MaxCardHeight)
			assert.InDelta(t, g.CardHeight, g.ImageHeight+g.TextHeight, 0.011)
			assert.InDelta(t, g.ContentWidth, g.PageWidth-2*g.Margin, 0.001)
			assert.GreaterOrEqual(t, g.Gap, MinGap)
		}
	}
}

func TestMaxRows(t *testing.T) {
	g := Dimensions(tpl(models.DensityMedium, 3, 6))
	rows := MaxRows(g)
	assert.Equal(t, 3, rows)
	assert.LessOrEqual(t, GridHeight(g, rows), g.ContentHeight)
	assert.Greater(t, GridHeight(g, rows+1), g.ContentHeight)
	assert.Equal(t, 2, RowsFor(6, 3))
	assert.Equal(t, 3, RowsFor(7, 3))
	assert.Equal(t, 0, RowsFor(0, 3))
}

func TestPaginateScenario(t *testing.T) {
	pages := Paginate(products(8), 6)
	require.Len(t, pages, 2)

	assert.Equal(t, 1, pages[0].Number)
	assert.False(t, pages[0].BreakBefore)
	assert.Len(t, pages[0].Slots, 6)
	for _, s := range pages[0].Slots {
		assert.False(t, s.Placeholder)
		require.NotNil(t, s.Product)
	}

	assert.Equal(t, 2, pages[1].Number)
	assert.True(t, pages[1].BreakBefore)
	require.Len(t, pages[1].Slots, 6)
	filled, placeholders := 0, 0
	for _, s := range pages[1].Slots {
		if s.Placeholder {
			assert.Nil(t, s.Product)
			placeholders++
		} else {
			filled++
		}
	}
	assert.Equal(t, 2, filled)
	assert.Equal(t, 4, placeholders)
}

func TestPaginateCompleteness(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for k := 1; k <= 9; k++ {
			in := products(n)
			pages := Paginate(in, k)

			wantPages := (n + k - 1) / k
			require.Len(t, pages, wantPages, "n=%d k=%d", n, k)

			var seen []string
			placeholders := 0
			for i, page := range pages {
				require.Len(t, page.Slots, k)
				assert.Equal(t, i > 0, page.BreakBefore)
				for _, s := range page.Slots {
					if s.Placeholder {
						assert.Equal(t, len(pages)-1, i, "placeholder outside last page")
						placeholders++
						continue
					}
					seen = append(seen, s.Product.ID)
				}
			}

			require.Len(t, seen, n)
			for i, p := range in {
				assert.Equal(t, p.ID, seen[i])
			}
			assert.Equal(t, k*wantPages-n, placeholders)
		}
	}
}

func TestPaginateNonPositivePageSize(t *testing.T) {
	pages := Paginate(products(3), 0)
	assert.Len(t, pages, 3)
	for _, p := range pages {
		assert.Len(t, p.Slots, 1)
	}
}

func TestResolveColorsScenario(t *testing.T) {
	def := tpl(models.DensityMedium, 3, 6)
	def.Palette = models.Palette{Primary: "#2563eb"}

	s := ResolveColors(def)
	assert.Equal(t, "#ffffff", s.Background)
	assert.Equal(t, "#4d3bff", s.Accent)
	assert.Equal(t, LightCardBackground, s.CardBackground)
	assert.Equal(t, "#2563eb", s.Secondary)
	assert.Equal(t, "#1a1a1a", s.Text)
	assert.Equal(t, LightSurfaceBorder, s.Border)
}

func TestResolveColorsDarkBackground(t *testing.T) {
	def := tpl(models.DensityMedium, 3, 6)
	def.Palette = models.Palette{Primary: "#fbbf24", Background: "#111111", Text: "#222222"}

	s := ResolveColors(def)
	assert.Equal(t, DarkCardBackground, s.CardBackground)
	assert.Equal(t, DarkSurfaceBorder, s.Border)
	assert.Equal(t, "#f5f5f5", s.Text, "illegible declared text is replaced")
	assert.Equal(t, "#000000", s.OnPrimary)
}

func TestResolveColorsKeepsLegibleDeclaredText(t *testing.T) {
	def := tpl(models.DensityMedium, 3, 6)
	def.Palette = models.Palette{Primary: "#0f766e", Text: "#0b1320"}

	s := ResolveColors(def)
	assert.Equal(t, "#0b1320", s.Text)
	assert.Equal(t, "#0b1320", s.CardText)
}

func TestResolveColorsCompleteness(t *testing.T) {
	for level := 0; level <= 255; level += 5 {
		bg := RGB{R: uint8(level), G: uint8(level), B: uint8(level)}.Hex()
		def := tpl(models.DensityLow, 2, 4)
		def.Palette = models.Palette{Primary: "not-a-color", Background: bg}

		s := ResolveColors(def)
		for role, v := range map[string]string{
			"primary": s.Primary, "secondary": s.Secondary, "accent": s.Accent,
			"background": s.Background, "card": s.CardBackground, "text": s.Text,
			"muted": s.TextMuted, "cardText": s.CardText, "border": s.Border, "onPrimary": s.OnPrimary,
			"onAccent": s.OnAccent,
		} {
			assert.True(t, ValidHex(v), "%s unset for background %s", role, bg)
		}
		assert.GreaterOrEqual(t, HexContrast(s.Text, s.Background), MinTextContrast, bg)
		assert.GreaterOrEqual(t, HexContrast(s.TextMuted, s.Background), MinTextContrast, bg)
		assert.GreaterOrEqual(t, HexContrast(s.CardText, s.CardBackground), MinTextContrast, bg)
		assert.Equal(t, DefaultPrimary, s.Primary)
	}
}

func TestResolveColorsOnAccent(t *testing.T) {
	def := tpl(models.DensityMedium, 3, 6)
	def.Palette = models.Palette{Primary: "#1e3a8a", Accent: "#fde047"}

	s := ResolveColors(def)
	assert.Equal(t, "#ffffff", s.OnPrimary)
	assert.Equal(t, "#000000", s.OnAccent, "light accent needs dark text")

	def.Palette.Accent = "#111827"
	assert.Equal(t, "#ffffff", ResolveColors(def).OnAccent)
}

func TestSynthesizeAccentClamps(t *testing.T) {
	c, ok := ParseHex("#f0100a")
	require.True(t, ok)
	assert.Equal(t, "#ff0032", SynthesizeAccent(c).Hex())
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#abc")
	require.True(t, ok)
	assert.Equal(t, "#aabbcc", c.Hex())

	_, ok = ParseHex("#12345")
	assert.False(t, ok)
	_, ok = ParseHex("zzzzzz")
	assert.False(t, ok)

	assert.InDelta(t, 21.0, HexContrast("#000000", "#ffffff"), 0.01)
}

func TestTypographyFallback(t *testing.T) {
	assert.Equal(t, Typography(tpl(models.DensityMedium, 3, 6)), Typography(tpl("bogus", 3, 6)))
	high := Typography(tpl(models.DensityHigh, 3, 6))
	low := Typography(tpl(models.DensityLow, 3, 6))
	assert.Less(t, high.Title, low.Title)
	assert.Less(t, high.SpecsMaxHeight, low.SpecsMaxHeight)
}

func TestEstimateTextHeight(t *testing.T) {
	ty := Typography(tpl(models.DensityMedium, 3, 6))
	bare := EstimateTextHeight(ty, models.ContentFlags{})
	full := EstimateTextHeight(ty, models.ContentFlags{
		ShowCategory: true, ShowDescription: true, ShowSKU: true,
		ShowSpecifications: true, ShowWholesalePrice: true, ShowWholesaleMinQty: true,
	})
	// (2*11 + 12) pt * 0.3528 * 1.3 + 4
	assert.InDelta(t, 19.59, bare, 0.01)
	assert.Greater(t, full, bare+ty.SpecsMaxHeight)
}
