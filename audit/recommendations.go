package audit

import (
	"fmt"
	"strings"

	"catalog-studio/models"
)

// industryTips are suggestions that apply to every template of an industry
var industryTips = map[string][]string{
	"fashion": {
		"Use cover fit with portrait photos so garments fill the card",
		"Show categories so buyers can scan collections",
	},
	"pets": {
		"Show wholesale prices for resellers and pet shops",
		"Use playful accents sparingly so products stay the focus",
	},
	"jewelry": {
		"Use low density with two columns so details stay visible",
		"Prefer dark or neutral backgrounds that make metals stand out",
	},
	"electronics": {
		"Show SKU and specifications; buyers compare models",
		"Keep decorations off so technical details stay legible",
	},
	"hardware": {
		"Show SKU and wholesale minimum quantities for trade customers",
		"High density grids work well for large inventories",
	},
	"food": {
		"Show descriptions for ingredients and portion sizes",
		"Warm backgrounds read better than pure white for menus",
	},
	"beauty": {
		"Use soft backgrounds with enough contrast for prices",
		"Descriptions help explain skin types and usage",
	},
	"furniture": {
		"Use contain fit so whole pieces are visible",
		"Specifications should list dimensions and materials",
	},
	"automotive": {
		"Show SKU and compatibility notes in specifications",
	},
}

func recommend(t models.TemplateDefinition, result *models.AuditResult) []string {
	var out []string

	counts := map[models.Severity]int{}
	for _, issue := range result.Issues {
		counts[issue.Severity]++
	}

	if n := counts[models.SeverityCritical]; n > 0 {
		out = append(out, fmt.Sprintf("Fix %d critical issue(s) before using this template", n))
	}
	if n := counts[models.SeverityHigh]; n > 0 {
		out = append(out, fmt.Sprintf("Resolve %d high severity issue(s); run the automatic correction", n))
	}
	if result.HasCategory(models.CategoryColors) {
		out = append(out, "Review the palette; text needs a 4.5:1 contrast ratio")
	}
	if result.HasCategory(models.CategoryPerformance) {
		out = append(out, "Simplify visuals on dense pages to keep exports fast")
	}
	if len(result.Issues) == 0 {
		out = append(out, "Template is ready to use")
	}

	out = append(out, industryTips[strings.ToLower(strings.TrimSpace(t.Industry))]...)
	return out
}
