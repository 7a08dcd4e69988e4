package models

import "strings"

// Density is the coarse sizing tier of a template
type Density string

const (
	DensityHigh   Density = "high"
	DensityMedium Density = "medium"
	DensityLow    Density = "low"
)

// Normalize maps any unknown density to medium
func (d Density) Normalize() Density {
	switch Density(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DensityHigh:
		return DensityHigh
	case DensityLow:
		return DensityLow
	case DensityMedium:
		return DensityMedium
	default:
		return DensityMedium
	}
}

// Known reports whether d is one of the three supported tiers
func (d Density) Known() bool {
	switch Density(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DensityHigh, DensityMedium, DensityLow:
		return true
	default:
		return false
	}
}

// Palette holds the declared colors of a template. Empty strings mean "not set".
type Palette struct {
	Primary        string `json:"primary" yaml:"primary"`
	Secondary      string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Accent         string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Background     string `json:"background,omitempty" yaml:"background,omitempty"`
	CardBackground string `json:"cardBackground,omitempty" yaml:"cardBackground,omitempty"`
	Text           string `json:"text,omitempty" yaml:"text,omitempty"`
	Border         string `json:"border,omitempty" yaml:"border,omitempty"`
}

// VisualFlags controls decoration of the rendered catalog
type VisualFlags struct {
	BorderRadius      int  `json:"borderRadius" yaml:"borderRadius"` // px
	Shadows           bool `json:"shadows" yaml:"shadows"`
	GeometricShapes   bool `json:"geometricShapes" yaml:"geometricShapes"`
	DiagonalAccents   bool `json:"diagonalAccents" yaml:"diagonalAccents"`
	BackgroundPattern bool `json:"backgroundPattern" yaml:"backgroundPattern"`
	Animation         bool `json:"animation" yaml:"animation"`
}

// Decorative reports whether any decorative header element is enabled
func (v VisualFlags) Decorative() bool {
	return v.GeometricShapes || v.DiagonalAccents || v.BackgroundPattern
}

// ContentFlags selects which optional product fields are rendered on cards
type ContentFlags struct {
	ShowCategory        bool `json:"showCategory" yaml:"showCategory"`
	ShowDescription     bool `json:"showDescription" yaml:"showDescription"`
	ShowSKU             bool `json:"showSku" yaml:"showSku"`
	ShowSpecifications  bool `json:"showSpecifications" yaml:"showSpecifications"`
	ShowWholesalePrice  bool `json:"showWholesalePrice" yaml:"showWholesalePrice"`
	ShowWholesaleMinQty bool `json:"showWholesaleMinQty" yaml:"showWholesaleMinQty"`
}

// TemplateDefinition describes how a catalog looks and what it shows.
// Values are treated as immutable once registered.
type TemplateDefinition struct {
	ID              string       `json:"id" yaml:"id"`
	DisplayName     string       `json:"displayName" yaml:"displayName"`
	Industry        string       `json:"industry" yaml:"industry"`
	Category        string       `json:"category,omitempty" yaml:"category,omitempty"`
	Tags            []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Density         Density      `json:"density" yaml:"density"`
	GridColumns     int          `json:"gridColumns" yaml:"gridColumns"`
	ProductsPerPage int          `json:"productsPerPage" yaml:"productsPerPage"`
	Palette         Palette      `json:"palette" yaml:"palette"`
	Visual          VisualFlags  `json:"visual" yaml:"visual"`
	Content         ContentFlags `json:"content" yaml:"content"`
}

// Clone returns a deep copy of the definition
func (t TemplateDefinition) Clone() TemplateDefinition {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return c
}

// Columns returns the grid column count used for rendering (at least 1)
func (t TemplateDefinition) Columns() int {
	if t.GridColumns < 1 {
		return 1
	}
	return t.GridColumns
}

// PageSize returns the slot count per page used for rendering (at least 1)
func (t TemplateDefinition) PageSize() int {
	if t.ProductsPerPage < 1 {
		return 1
	}
	return t.ProductsPerPage
}
