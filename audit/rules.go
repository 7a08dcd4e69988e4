package audit

// Rule identifiers reported in models.Issue.Rule
const (
	RuleColumnsInvalid   = "layout.columns_invalid"
	RulePageSizeInvalid  = "layout.page_size_invalid"
	RuleTooManyColumns   = "layout.too_many_columns"
	RuleCardTooNarrow    = "layout.card_too_narrow"
	RuleRowsOverflow     = "layout.rows_overflow"
	RulePageNotMultiple  = "layout.page_not_multiple_of_columns"
	RuleRadiusExcessive  = "layout.radius_excessive"
	RuleRadiusLarge      = "layout.radius_large"
	RulePageBelowColumns = "layout.page_smaller_than_row"

	RulePrimaryInvalid     = "colors.primary_invalid"
	RuleInvalidHex         = "colors.invalid_hex"
	RuleTextContrast       = "colors.text_contrast"
	RulePrimaryContrast    = "colors.primary_contrast"
	RuleSecondaryIsPrimary = "colors.secondary_equals_primary"
	RuleAccentMissing      = "colors.accent_missing"
	RuleBackgroundMissing  = "colors.background_missing"
	RuleBorderMissing      = "colors.border_missing"

	RuleDensityUnknown   = "typography.density_unknown"
	RuleTextOverflow     = "typography.text_overflow"
	RuleDescriptionDense = "typography.description_dense"

	RulePageSizeExcessive = "performance.page_size_excessive"
	RulePageSizeLarge     = "performance.page_size_large"
	RuleShadowsDense      = "performance.shadows_high_density"
	RuleAnimation         = "performance.animation"
	RuleDecorationsDense  = "performance.decorations_high_density"

	RuleProofVisuals   = "compatibility.proof_visuals"
	RuleAnimationPrint = "compatibility.animation_print"
	RulePNGColumns     = "compatibility.png_columns"
)

// Layout limits
const (
	MaxColumns        = 6
	MinCardWidth      = 25.0
	MaxRadius         = 20
	RecommendedRadius = 12
)

// Color limits
const (
	MinPrimaryContrast = 3.0
)

// Performance limits
const (
	MaxPageSize         = 30
	RecommendedPageSize = 20
)

// MaxPhoneColumns is the widest grid still readable in a shared PNG on a phone
const MaxPhoneColumns = 4

// Render targets listed in the compatibility matrix
const (
	TargetChromePDF   = "chrome_pdf"
	TargetPNGShare    = "png_share"
	TargetNativeProof = "native_proof"
	TargetHTMLPreview = "html_preview"
)

// Targets lists every render target in report order
var Targets = []string{TargetChromePDF, TargetPNGShare, TargetNativeProof, TargetHTMLPreview}
