package layout

import "catalog-studio/models"

// MinTextContrast is the minimum contrast between text and the surface it sits on
const MinTextContrast = 4.5

// AccentDelta is the channel offset used to synthesize an accent from the primary
const AccentDelta = 40

// Fallback colors
const (
	DefaultPrimary        = "#333333"
	DefaultBackground     = "#ffffff"
	LightCardBackground   = "#ffffff"
	DarkCardBackground    = "#1f2937"
	LightSurfaceBorder    = "#e5e7eb"
	DarkSurfaceBorder     = "#374151"
	darkText, darkMuted   = "#1a1a1a", "#555555"
	lightText, lightMuted = "#f5f5f5", "#c8c8c8"
	black, white          = "#000000", "#ffffff"
)

type textPair struct {
	text, muted string
}

var (
	darkPair  = textPair{text: darkText, muted: darkMuted}
	lightPair = textPair{text: lightText, muted: lightMuted}
)

// SynthesizeAccent derives an accent from the primary color (+R, -G, +B)
func SynthesizeAccent(primary RGB) RGB {
	return primary.Offset(AccentDelta, -AccentDelta, AccentDelta)
}

// ResolveColors returns a fully populated, contrast checked scheme for t
func ResolveColors(t models.TemplateDefinition) models.ColorScheme {
	p := t.Palette

	primary, ok := ParseHex(p.Primary)
	if !ok {
		primary, _ = ParseHex(DefaultPrimary)
	}

	secondary, ok := ParseHex(p.Secondary)
	if !ok {
		secondary = primary
	}

	accent, ok := ParseHex(p.Accent)
	if !ok {
		accent = SynthesizeAccent(primary)
	}

	background, ok := ParseHex(p.Background)
	if !ok {
		background, _ = ParseHex(DefaultBackground)
	}

	cardBackground, ok := ParseHex(p.CardBackground)
	if !ok {
		if background.IsLight() {
			cardBackground, _ = ParseHex(LightCardBackground)
		} else {
			cardBackground, _ = ParseHex(DarkCardBackground)
		}
	}

	border, ok := ParseHex(p.Border)
	if !ok {
		if background.IsLight() {
			border, _ = ParseHex(LightSurfaceBorder)
		} else {
			border, _ = ParseHex(DarkSurfaceBorder)
		}
	}

	text, muted := resolveText(p.Text, background)
	cardText, _ := resolveText(p.Text, cardBackground)

	return models.ColorScheme{
		Primary:        primary.Hex(),
		Secondary:      secondary.Hex(),
		Accent:         accent.Hex(),
		Background:     background.Hex(),
		CardBackground: cardBackground.Hex(),
		Text:           text,
		TextMuted:      muted,
		CardText:       cardText,
		Border:         border.Hex(),
		OnPrimary:      bestOf(primary, black, white),
		OnAccent:       bestOf(accent, black, white),
	}
}

// resolveText keeps a declared text color when it is legible on surface,
// otherwise picks the dark or light pair by surface lightness.
func resolveText(declared string, surface RGB) (string, string) {
	if c, ok := ParseHex(declared); ok && ContrastRatio(c, surface) >= MinTextContrast {
		muted := darkMuted
		if !surface.IsLight() {
			muted = lightMuted
		}
		if HexContrast(muted, surface.Hex()) < MinTextContrast {
			muted = c.Hex()
		}
		return c.Hex(), muted
	}

	first, second := darkPair, lightPair
	if !surface.IsLight() {
		first, second = lightPair, darkPair
	}
	pair := first
	if HexContrast(first.text, surface.Hex()) < MinTextContrast &&
		HexContrast(second.text, surface.Hex()) > HexContrast(first.text, surface.Hex()) {
		pair = second
	}
	if HexContrast(pair.text, surface.Hex()) < MinTextContrast {
		t := bestOf(surface, black, white)
		return t, t
	}
	muted := pair.muted
	if HexContrast(muted, surface.Hex()) < MinTextContrast {
		muted = pair.text
	}
	return pair.text, muted
}

// bestOf returns whichever candidate contrasts more with surface
func bestOf(surface RGB, a, b string) string {
	if HexContrast(a, surface.Hex()) >= HexContrast(b, surface.Hex()) {
		return a
	}
	return b
}
