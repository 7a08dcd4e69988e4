package audit

import (
	"math"
	"strings"

	"catalog-studio/layout"
	"catalog-studio/models"
)

// Correction defaults
const (
	DefaultPageSize = 9
	MaxAutoColumns  = 5
	// rowRatio is the target rows-per-column ratio of a corrected grid
	rowRatio = 1.4
)

// layoutRules are the findings fixed by renormalizing the grid
var layoutRules = []string{
	RuleColumnsInvalid,
	RulePageSizeInvalid,
	RuleTooManyColumns,
	RuleCardTooNarrow,
	RuleRowsOverflow,
	RulePageNotMultiple,
	RulePageBelowColumns,
	RulePageSizeExcessive,
	RulePageSizeLarge,
}

// Correct returns a corrected copy of the audited template. Only fixes for
// findings present in result are applied; result itself is not modified.
// A template produced by Correct has no findings of medium severity or above.
func Correct(result *models.AuditResult) models.TemplateDefinition {
	t := result.Template.Clone()

	if result.HasRule(RuleDensityUnknown) {
		t.Density = models.DensityMedium
	}

	for _, rule := range layoutRules {
		if result.HasRule(rule) {
			normalizeGrid(&t)
			break
		}
	}

	if result.HasRule(RuleRadiusExcessive) || result.HasRule(RuleRadiusLarge) {
		t.Visual.BorderRadius = RecommendedRadius
	}

	if result.HasCategory(models.CategoryColors) {
		repairPalette(&t)
	}

	high := t.Density.Normalize() == models.DensityHigh
	if result.HasRule(RuleShadowsDense) && high {
		t.Visual.Shadows = false
	}
	if result.HasRule(RuleAnimation) || result.HasRule(RuleAnimationPrint) {
		t.Visual.Animation = false
	}
	if result.HasRule(RuleDecorationsDense) && high {
		t.Visual.GeometricShapes = false
		t.Visual.DiagonalAccents = false
		t.Visual.BackgroundPattern = false
	}
	if result.HasRule(RuleDescriptionDense) && high && t.Columns() >= 4 {
		t.Content.ShowDescription = false
	}

	return t
}

// normalizeGrid picks a column count for the page size and trims the page
// size to whole rows that fit on the page.
func normalizeGrid(t *models.TemplateDefinition) {
	perPage := t.ProductsPerPage
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > RecommendedPageSize {
		perPage = RecommendedPageSize
	}

	columns := OptimalColumns(perPage)
	t.GridColumns = columns

	fit := layout.MaxRows(layout.Dimensions(*t))
	rows := perPage / columns
	if rows > fit {
		rows = fit
	}
	if rows < 1 {
		rows = 1
	}
	t.ProductsPerPage = rows * columns
}

// OptimalColumns returns the column count between 1 and 5 whose grid for
// perPage products comes closest to 1.4 rows per column.
func OptimalColumns(perPage int) int {
	if perPage <= 1 {
		return 1
	}

	best, bestScore := 0, math.Inf(1)
	for c := 2; c <= MaxAutoColumns; c++ {
		if perPage%c != 0 {
			continue
		}
		score := math.Abs(float64(perPage)/float64(c) - rowRatio*float64(c))
		if score < bestScore {
			best, bestScore = c, score
		}
	}
	if best > 0 {
		return best
	}

	c := int(math.Round(math.Sqrt(float64(perPage) / rowRatio)))
	return min(max(c, 2), MaxAutoColumns)
}

// repairPalette replaces invalid colors, adjusts the primary until it reads
// on the card background and backfills every missing role.
func repairPalette(t *models.TemplateDefinition) {
	p := &t.Palette

	if !layout.ValidHex(p.Primary) {
		p.Primary = layout.DefaultPrimary
	}
	for _, c := range []*string{&p.Secondary, &p.Accent, &p.Background, &p.CardBackground, &p.Text, &p.Border} {
		if strings.TrimSpace(*c) != "" && !layout.ValidHex(*c) {
			*c = ""
		}
	}
	if p.Background == "" {
		p.Background = layout.DefaultBackground
	}

	scheme := layout.ResolveColors(*t)
	card, _ := layout.ParseHex(scheme.CardBackground)
	primary, _ := layout.ParseHex(p.Primary)
	primary = readableOn(primary, card)
	p.Primary = primary.Hex()

	if secondary, ok := layout.ParseHex(p.Secondary); ok && secondary == primary {
		p.Secondary = ""
	}
	if p.Secondary == "" {
		p.Secondary = deriveSecondary(p.Primary)
	}

	scheme = layout.ResolveColors(*t)
	if p.Accent == "" {
		p.Accent = scheme.Accent
	}
	if p.Border == "" {
		p.Border = scheme.Border
	}
	if p.Text != "" && layout.HexContrast(p.Text, scheme.Background) < layout.MinTextContrast {
		p.Text = scheme.Text
	}
}

// readableOn moves c toward black or white, whichever contrasts more with
// surface, until the contrast reaches MinPrimaryContrast.
func readableOn(c, surface layout.RGB) layout.RGB {
	if layout.ContrastRatio(c, surface) >= MinPrimaryContrast {
		return c
	}
	black, white := layout.RGB{}, layout.RGB{R: 255, G: 255, B: 255}
	target := white
	if layout.ContrastRatio(black, surface) > layout.ContrastRatio(white, surface) {
		target = black
	}
	for step := 1; step <= 10; step++ {
		next := c.Mix(target, float64(step)/10)
		if layout.ContrastRatio(next, surface) >= MinPrimaryContrast {
			return next
		}
	}
	return target
}

// deriveSecondary returns a tint or shade of primary
func deriveSecondary(primary string) string {
	c, _ := layout.ParseHex(primary)
	if c.IsLight() {
		return c.Mix(layout.RGB{}, 0.4).Hex()
	}
	return c.Mix(layout.RGB{R: 255, G: 255, B: 255}, 0.4).Hex()
}
