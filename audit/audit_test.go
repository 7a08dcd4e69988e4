package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-studio/models"
	"catalog-studio/registry"
)

func cleanTemplate() models.TemplateDefinition {
	return models.TemplateDefinition{
		ID:              "clean",
		DisplayName:     "Clean",
		Industry:        "fashion",
		Density:         models.DensityMedium,
		GridColumns:     3,
		ProductsPerPage: 9,
		Palette: models.Palette{
			Primary:    "#2563eb",
			Secondary:  "#1e40af",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Border:     "#e5e7eb",
		},
	}
}

func rules(r *models.AuditResult) []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Rule)
	}
	return out
}

func TestAuditCleanTemplate(t *testing.T) {
	result := Audit(cleanTemplate())

	assert.Empty(t, result.Issues)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, models.StatusPerfect, result.Status)
	assert.Equal(t, "clean", result.TemplateID)
	assert.Contains(t, result.Recommendations, "Template is ready to use")

	_, err := uuid.Parse(result.ID)
	assert.NoError(t, err)
	assert.False(t, result.AuditedAt.IsZero())
}

func TestAuditScenario(t *testing.T) {
	def := cleanTemplate()
	def.GridColumns = 5
	def.ProductsPerPage = 35
	def.Visual.BorderRadius = 25
	def.Palette.Secondary = def.Palette.Primary

	result := Audit(def)

	assert.True(t, result.HasRule(RuleRadiusExcessive), rules(result))
	assert.True(t, result.HasRule(RulePageSizeExcessive), rules(result))
	assert.True(t, result.HasRule(RuleRowsOverflow), rules(result))
	assert.True(t, result.HasRule(RuleSecondaryIsPrimary), rules(result))
	assert.True(t, result.HasCategory(models.CategoryLayout))
	assert.True(t, result.HasCategory(models.CategoryPerformance))
	assert.Equal(t, models.StatusNeedsFix, result.Status)
	assert.Less(t, result.Score, 90)
	assert.Equal(t, Score(result.Issues), result.Score)
}

func TestAuditMalformedTemplate(t *testing.T) {
	result := Audit(models.TemplateDefinition{ID: "broken", Density: "weird"})

	assert.True(t, result.HasRule(RuleColumnsInvalid))
	assert.True(t, result.HasRule(RulePageSizeInvalid))
	assert.True(t, result.HasRule(RulePrimaryInvalid))
	assert.True(t, result.HasRule(RuleDensityUnknown))
	assert.Equal(t, models.StatusBroken, result.Status)
	assert.False(t, result.Compatibility[TargetChromePDF].Compatible)
	assert.True(t, result.Compatibility[TargetHTMLPreview].Compatible)
	assert.Equal(t, models.Scalability{MinProducts: 1, OptimalProducts: 5, MaxProducts: 50}, result.Scalability)
}

func TestAuditDoesNotModifyInput(t *testing.T) {
	def := cleanTemplate()
	def.Tags = []string{"a"}
	result := Audit(def)

	result.Template.Tags[0] = "changed"
	assert.Equal(t, "a", def.Tags[0])
}

func TestAuditRules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.TemplateDefinition)
		rule   string
		want   models.Severity
	}{
		{
			name:   "too many columns",
			modify: func(d *models.TemplateDefinition) { d.GridColumns, d.ProductsPerPage = 8, 8 },
			rule:   RuleTooManyColumns,
			want:   models.SeverityHigh,
		},
		{
			name:   "narrow cards",
			modify: func(d *models.TemplateDefinition) { d.Density, d.GridColumns, d.ProductsPerPage = models.DensityLow, 7, 7 },
			rule:   RuleCardTooNarrow,
			want:   models.SeverityHigh,
		},
		{
			name:   "page not multiple of columns",
			modify: func(d *models.TemplateDefinition) { d.ProductsPerPage = 8 },
			rule:   RulePageNotMultiple,
			want:   models.SeverityMedium,
		},
		{
			name:   "page smaller than a row",
			modify: func(d *models.TemplateDefinition) { d.ProductsPerPage = 2 },
			rule:   RulePageBelowColumns,
			want:   models.SeverityMedium,
		},
		{
			name:   "large radius",
			modify: func(d *models.TemplateDefinition) { d.Visual.BorderRadius = 16 },
			rule:   RuleRadiusLarge,
			want:   models.SeverityMedium,
		},
		{
			name:   "invalid optional hex",
			modify: func(d *models.TemplateDefinition) { d.Palette.Border = "#zzzzzz" },
			rule:   RuleInvalidHex,
			want:   models.SeverityMedium,
		},
		{
			name:   "low text contrast",
			modify: func(d *models.TemplateDefinition) { d.Palette.Text = "#eeeeee" },
			rule:   RuleTextContrast,
			want:   models.SeverityHigh,
		},
		{
			name:   "low primary contrast",
			modify: func(d *models.TemplateDefinition) { d.Palette.Primary = "#fafafa" },
			rule:   RulePrimaryContrast,
			want:   models.SeverityMedium,
		},
		{
			name:   "missing accent",
			modify: func(d *models.TemplateDefinition) { d.Palette.Accent = "" },
			rule:   RuleAccentMissing,
			want:   models.SeverityLow,
		},
		{
			name:   "text overflow",
			modify: func(d *models.TemplateDefinition) { d.Content = allContent() },
			rule:   RuleTextOverflow,
			want:   models.SeverityLow,
		},
		{
			name: "description on dense grid",
			modify: func(d *models.TemplateDefinition) {
				d.Density, d.GridColumns, d.ProductsPerPage = models.DensityHigh, 4, 16
				d.Content.ShowDescription = true
			},
			rule: RuleDescriptionDense,
			want: models.SeverityLow,
		},
		{
			name:   "large page",
			modify: func(d *models.TemplateDefinition) { d.Density, d.GridColumns, d.ProductsPerPage = models.DensityHigh, 5, 25 },
			rule:   RulePageSizeLarge,
			want:   models.SeverityMedium,
		},
		{
			name:   "shadows on dense grid",
			modify: func(d *models.TemplateDefinition) { d.Density, d.Visual.Shadows = models.DensityHigh, true },
			rule:   RuleShadowsDense,
			want:   models.SeverityMedium,
		},
		{
			name:   "animation",
			modify: func(d *models.TemplateDefinition) { d.Visual.Animation = true },
			rule:   RuleAnimation,
			want:   models.SeverityLow,
		},
		{
			name:   "decorations on dense grid",
			modify: func(d *models.TemplateDefinition) { d.Density, d.Visual.DiagonalAccents = models.DensityHigh, true },
			rule:   RuleDecorationsDense,
			want:   models.SeverityLow,
		},
		{
			name:   "proof visuals",
			modify: func(d *models.TemplateDefinition) { d.Visual.BackgroundPattern = true },
			rule:   RuleProofVisuals,
			want:   models.SeverityLow,
		},
		{
			name:   "wide grid shared as image",
			modify: func(d *models.TemplateDefinition) { d.GridColumns, d.ProductsPerPage = 5, 15 },
			rule:   RulePNGColumns,
			want:   models.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := cleanTemplate()
			tt.modify(&def)
			result := Audit(def)

			var found *models.Issue
			for i := range result.Issues {
				if result.Issues[i].Rule == tt.rule {
					found = &result.Issues[i]
				}
			}
			require.NotNil(t, found, rules(result))
			assert.Equal(t, tt.want, found.Severity)
			assert.NotEmpty(t, found.Description)
			assert.NotEmpty(t, found.Fix)
		})
	}
}

func allContent() models.ContentFlags {
	return models.ContentFlags{
		ShowCategory:        true,
		ShowDescription:     true,
		ShowSKU:             true,
		ShowSpecifications:  true,
		ShowWholesalePrice:  true,
		ShowWholesaleMinQty: true,
	}
}

func TestCompatibilityMatrix(t *testing.T) {
	def := cleanTemplate()
	def.GridColumns, def.ProductsPerPage = 5, 15
	def.Visual.Animation = true

	result := Audit(def)
	require.Len(t, result.Compatibility, len(Targets))
	for _, target := range Targets {
		assert.Contains(t, result.Compatibility, target)
	}
	assert.False(t, result.Compatibility[TargetPNGShare].Compatible)
	assert.True(t, result.Compatibility[TargetChromePDF].Compatible)
	assert.Contains(t, result.Compatibility[TargetChromePDF].Notes, "animation is ignored")
}

func TestScalability(t *testing.T) {
	result := Audit(cleanTemplate())
	assert.Equal(t, models.Scalability{MinProducts: 3, OptimalProducts: 45, MaxProducts: 450}, result.Scalability)
}

func TestScore(t *testing.T) {
	issue := func(s models.Severity) models.Issue { return models.Issue{Severity: s} }

	assert.Equal(t, 100, Score(nil))
	assert.Equal(t, 100-25-15-8-3, Score([]models.Issue{
		issue(models.SeverityCritical), issue(models.SeverityHigh), issue(models.SeverityMedium), issue(models.SeverityLow),
	}))
	assert.Equal(t, 0, Score([]models.Issue{
		issue(models.SeverityCritical), issue(models.SeverityCritical), issue(models.SeverityCritical),
		issue(models.SeverityCritical), issue(models.SeverityCritical),
	}))
}

func TestStatus(t *testing.T) {
	issue := func(s models.Severity) models.Issue { return models.Issue{Severity: s} }

	tests := []struct {
		name   string
		issues []models.Issue
		score  int
		want   models.AuditStatus
	}{
		{name: "critical", issues: []models.Issue{issue(models.SeverityCritical)}, score: 75, want: models.StatusBroken},
		{name: "high", issues: []models.Issue{issue(models.SeverityHigh)}, score: 85, want: models.StatusNeedsFix},
		{name: "low score", issues: []models.Issue{issue(models.SeverityMedium)}, score: 59, want: models.StatusNeedsFix},
		{name: "perfect", issues: []models.Issue{issue(models.SeverityLow)}, score: 97, want: models.StatusPerfect},
		{name: "good", issues: []models.Issue{issue(models.SeverityMedium)}, score: 89, want: models.StatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.issues, tt.score))
		})
	}
}

func TestRecommendationsIncludeIndustryTips(t *testing.T) {
	def := cleanTemplate()
	def.Industry = "Jewelry"
	result := Audit(def)

	for _, tip := range industryTips["jewelry"] {
		assert.Contains(t, result.Recommendations, tip)
	}
}

func TestAuditAll(t *testing.T) {
	reg := registry.MustBuiltin()

	results, err := AuditAll(context.Background(), reg)
	require.NoError(t, err)
	require.Len(t, results, reg.Len())
	for i, id := range reg.IDs() {
		assert.Equal(t, id, results[i].TemplateID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = AuditAll(ctx, reg)
	assert.ErrorIs(t, err, context.Canceled)
}
