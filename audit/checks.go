package audit

import (
	"fmt"
	"strings"

	"catalog-studio/layout"
	"catalog-studio/models"
)

func checkLayout(s subject, r *report) {
	t := s.def
	if t.GridColumns < 1 {
		r.add(RuleColumnsInvalid, models.SeverityCritical, models.CategoryLayout,
			fmt.Sprintf("gridColumns is %d; at least one column is required", t.GridColumns),
			"Set gridColumns between 1 and 5")
	}
	if t.ProductsPerPage < 1 {
		r.add(RulePageSizeInvalid, models.SeverityCritical, models.CategoryLayout,
			fmt.Sprintf("productsPerPage is %d; pages cannot be empty", t.ProductsPerPage),
			"Set productsPerPage to a positive multiple of gridColumns")
	}
	if t.GridColumns > MaxColumns {
		r.add(RuleTooManyColumns, models.SeverityHigh, models.CategoryLayout,
			fmt.Sprintf("%d columns exceed the maximum of %d on A4", t.GridColumns, MaxColumns),
			"Reduce gridColumns to 5 or fewer")
	}
	if s.geometry.CardWidth < MinCardWidth {
		r.add(RuleCardTooNarrow, models.SeverityHigh, models.CategoryLayout,
			fmt.Sprintf("cards are %.2fmm wide, below the %.0fmm minimum", s.geometry.CardWidth, MinCardWidth),
			"Use fewer columns")
	}

	if t.GridColumns >= 1 && t.ProductsPerPage >= 1 {
		rows := layout.RowsFor(t.ProductsPerPage, t.GridColumns)
		if fit := layout.MaxRows(s.geometry); rows > fit {
			r.add(RuleRowsOverflow, models.SeverityHigh, models.CategoryLayout,
				fmt.Sprintf("%d rows of %.2fmm cards need %.2fmm but only %.2fmm is available",
					rows, s.geometry.CardHeight, layout.GridHeight(s.geometry, rows), s.geometry.ContentHeight),
				fmt.Sprintf("Show at most %d products per page", fit*t.GridColumns))
		}
		if t.ProductsPerPage%t.GridColumns != 0 {
			r.add(RulePageNotMultiple, models.SeverityMedium, models.CategoryLayout,
				fmt.Sprintf("%d products per page leave the last row of %d columns incomplete", t.ProductsPerPage, t.GridColumns),
				"Make productsPerPage a multiple of gridColumns")
		}
	}

	switch radius := t.Visual.BorderRadius; {
	case radius > MaxRadius:
		r.add(RuleRadiusExcessive, models.SeverityHigh, models.CategoryLayout,
			fmt.Sprintf("borderRadius %dpx clips card content", radius),
			fmt.Sprintf("Use a borderRadius of %dpx or less", RecommendedRadius))
	case radius > RecommendedRadius:
		r.add(RuleRadiusLarge, models.SeverityMedium, models.CategoryLayout,
			fmt.Sprintf("borderRadius %dpx is large for print cards", radius),
			fmt.Sprintf("Use a borderRadius of %dpx or less", RecommendedRadius))
	}
}

func checkColors(s subject, r *report) {
	p := s.def.Palette

	primary, primaryOK := layout.ParseHex(p.Primary)
	if !primaryOK {
		desc := "primary color is missing"
		if strings.TrimSpace(p.Primary) != "" {
			desc = fmt.Sprintf("primary color %q is not a valid hex color", p.Primary)
		}
		r.add(RulePrimaryInvalid, models.SeverityCritical, models.CategoryColors, desc,
			"Set palette.primary to a #rrggbb color")
	}

	optional := []struct {
		name, value string
	}{
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"background", p.Background},
		{"cardBackground", p.CardBackground},
		{"text", p.Text},
		{"border", p.Border},
	}
	for _, c := range optional {
		if strings.TrimSpace(c.value) != "" && !layout.ValidHex(c.value) {
			r.add(RuleInvalidHex, models.SeverityMedium, models.CategoryColors,
				fmt.Sprintf("%s color %q is not a valid hex color", c.name, c.value),
				fmt.Sprintf("Set palette.%s to a #rrggbb color or remove it", c.name))
		}
	}

	if text, ok := layout.ParseHex(p.Text); ok {
		bg, _ := layout.ParseHex(s.scheme.Background)
		if ratio := layout.ContrastRatio(text, bg); ratio < layout.MinTextContrast {
			r.add(RuleTextContrast, models.SeverityHigh, models.CategoryColors,
				fmt.Sprintf("text %s on background %s has contrast %.2f:1, below %.1f:1",
					text.Hex(), bg.Hex(), ratio, layout.MinTextContrast),
				"Use a darker text color on light backgrounds or a lighter one on dark backgrounds")
		}
	}

	if primaryOK {
		card, _ := layout.ParseHex(s.scheme.CardBackground)
		if ratio := layout.ContrastRatio(primary, card); ratio < MinPrimaryContrast {
			r.add(RulePrimaryContrast, models.SeverityMedium, models.CategoryColors,
				fmt.Sprintf("primary %s on card background %s has contrast %.2f:1, prices will be hard to read",
					primary.Hex(), card.Hex(), ratio),
				"Darken or lighten the primary color")
		}
		if secondary, ok := layout.ParseHex(p.Secondary); ok && secondary == primary {
			r.add(RuleSecondaryIsPrimary, models.SeverityLow, models.CategoryColors,
				"secondary color is identical to primary",
				"Pick a secondary color that differs from primary")
		}
	}

	if strings.TrimSpace(p.Accent) == "" {
		r.add(RuleAccentMissing, models.SeverityLow, models.CategoryColors,
			"accent color is not set and will be derived from primary", "Set palette.accent")
	}
	if strings.TrimSpace(p.Background) == "" {
		r.add(RuleBackgroundMissing, models.SeverityLow, models.CategoryColors,
			"background color is not set and defaults to white", "Set palette.background")
	}
	if strings.TrimSpace(p.Border) == "" {
		r.add(RuleBorderMissing, models.SeverityLow, models.CategoryColors,
			"border color is not set and will follow the background", "Set palette.border")
	}
}

func checkTypography(s subject, r *report) {
	t := s.def
	if !t.Density.Known() {
		r.add(RuleDensityUnknown, models.SeverityMedium, models.CategoryTypography,
			fmt.Sprintf("density %q is not one of high, medium or low; medium is used", t.Density),
			"Set density to high, medium or low")
	}

	need := layout.EstimateTextHeight(s.typography, t.Content)
	if need > s.geometry.TextHeight {
		r.add(RuleTextOverflow, models.SeverityLow, models.CategoryTypography,
			fmt.Sprintf("a fully populated card needs %.2fmm of text area but has %.2fmm", need, s.geometry.TextHeight),
			"Hide optional fields or use fewer columns")
	}

	if t.Density.Normalize() == models.DensityHigh && t.Content.ShowDescription && s.geometry.Columns >= 4 {
		r.add(RuleDescriptionDense, models.SeverityLow, models.CategoryTypography,
			fmt.Sprintf("descriptions are clamped to one line on %d column high density cards", s.geometry.Columns),
			"Hide descriptions or lower the density")
	}
}

func checkPerformance(s subject, r *report) {
	t := s.def
	switch {
	case t.ProductsPerPage > MaxPageSize:
		r.add(RulePageSizeExcessive, models.SeverityHigh, models.CategoryPerformance,
			fmt.Sprintf("%d products per page makes pages slow to render and export", t.ProductsPerPage),
			fmt.Sprintf("Show at most %d products per page", RecommendedPageSize))
	case t.ProductsPerPage > RecommendedPageSize:
		r.add(RulePageSizeLarge, models.SeverityMedium, models.CategoryPerformance,
			fmt.Sprintf("%d products per page is above the recommended %d", t.ProductsPerPage, RecommendedPageSize),
			fmt.Sprintf("Show at most %d products per page", RecommendedPageSize))
	}

	high := t.Density.Normalize() == models.DensityHigh
	if high && t.Visual.Shadows {
		r.add(RuleShadowsDense, models.SeverityMedium, models.CategoryPerformance,
			"card shadows on high density pages slow down PDF export",
			"Disable shadows")
	}
	if t.Visual.Animation {
		r.add(RuleAnimation, models.SeverityLow, models.CategoryPerformance,
			"animations add no value to a printed catalog",
			"Disable animation")
	}
	if high && t.Visual.Decorative() {
		r.add(RuleDecorationsDense, models.SeverityLow, models.CategoryPerformance,
			"decorative header elements compete with dense product grids",
			"Disable decorative elements")
	}
}

func checkCompatibility(s subject, r *report) map[string]models.Compatibility {
	t := s.def
	matrix := make(map[string]models.Compatibility, len(Targets))
	printable := t.GridColumns >= 1 && t.ProductsPerPage >= 1

	var pdf, png, proof, preview models.Compatibility
	pdf.Compatible = printable
	png.Compatible = printable
	proof.Compatible = printable
	preview.Compatible = true
	if !printable {
		note := "invalid grid configuration"
		pdf.Notes = append(pdf.Notes, note)
		png.Notes = append(png.Notes, note)
		proof.Notes = append(proof.Notes, note)
	}

	var lost []string
	if t.Visual.BorderRadius > 0 {
		lost = append(lost, "rounded corners")
	}
	if t.Visual.Shadows {
		lost = append(lost, "shadows")
	}
	if t.Visual.BackgroundPattern {
		lost = append(lost, "background pattern")
	}
	if t.Visual.GeometricShapes || t.Visual.DiagonalAccents {
		lost = append(lost, "header decorations")
	}
	if len(lost) > 0 {
		note := "not reproduced: " + strings.Join(lost, ", ")
		proof.Notes = append(proof.Notes, note)
		r.add(RuleProofVisuals, models.SeverityLow, models.CategoryCompatibility,
			"the native proof does not reproduce "+strings.Join(lost, ", "),
			"Review the Chrome PDF export for the final look")
	}

	if t.Visual.Animation {
		note := "animation is ignored"
		pdf.Notes = append(pdf.Notes, note)
		png.Notes = append(png.Notes, note)
		r.add(RuleAnimationPrint, models.SeverityLow, models.CategoryCompatibility,
			"animations are ignored by PDF and PNG export",
			"Disable animation")
	}

	if t.GridColumns > MaxPhoneColumns {
		png.Compatible = false
		png.Notes = append(png.Notes, fmt.Sprintf("%d columns are unreadable on phones", t.GridColumns))
		r.add(RulePNGColumns, models.SeverityLow, models.CategoryCompatibility,
			fmt.Sprintf("%d column pages are hard to read when shared as images on phones", t.GridColumns),
			fmt.Sprintf("Use %d columns or fewer for catalogs shared as images", MaxPhoneColumns))
	}

	matrix[TargetChromePDF] = pdf
	matrix[TargetPNGShare] = png
	matrix[TargetNativeProof] = proof
	matrix[TargetHTMLPreview] = preview
	return matrix
}

func checkScalability(s subject, r *report) models.Scalability {
	t := s.def
	if t.GridColumns >= 1 && t.ProductsPerPage >= 1 && t.ProductsPerPage < t.GridColumns {
		r.add(RulePageBelowColumns, models.SeverityMedium, models.CategoryLayout,
			fmt.Sprintf("%d products per page cannot fill one row of %d columns", t.ProductsPerPage, t.GridColumns),
			"Show at least one full row per page")
	}

	perPage := t.PageSize()
	return models.Scalability{
		MinProducts:     t.Columns(),
		OptimalProducts: perPage * 5,
		MaxProducts:     perPage * 50,
	}
}
