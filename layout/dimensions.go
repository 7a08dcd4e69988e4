// Package layout computes catalog page geometry, typography, color schemes
// and pagination. Every function here is pure.
package layout

import (
	"math"

	"catalog-studio/models"
)

// A4 portrait, mm
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

// Card height bounds, mm
const (
	MinCardHeight = 35.0
	MaxCardHeight = 90.0
)

// MinGap is the smallest gutter between cards, mm
const MinGap = 3.0

// densityMetrics are the per-density page constants
type densityMetrics struct {
	margin      float64
	gapFraction float64
}

func metricsFor(d models.Density) densityMetrics {
	switch d.Normalize() {
	case models.DensityHigh:
		return densityMetrics{margin: 8, gapFraction: 0.015}
	case models.DensityLow:
		return densityMetrics{margin: 15, gapFraction: 0.025}
	default:
		return densityMetrics{margin: 12, gapFraction: 0.02}
	}
}

// cardHeightOffset is the chrome overhead added to the card width.
// Empirical values, kept as-is.
func cardHeightOffset(columns int) float64 {
	switch {
	case columns <= 1:
		return 30
	case columns == 2:
		return 25
	case columns == 3:
		return 20
	case columns == 4:
		return 15
	default:
		return 12
	}
}

// imageRatio is the share of the card height given to the image.
// Empirical values, kept as-is.
func imageRatio(columns int) float64 {
	switch {
	case columns <= 2:
		return 0.65
	case columns == 3:
		return 0.6
	case columns == 4:
		return 0.55
	default:
		return 0.5
	}
}

// Dimensions computes the page geometry for a template. It never fails:
// unknown densities use the medium values and column counts below 1 are treated as 1.
func Dimensions(t models.TemplateDefinition) models.Geometry {
	return dimensions(t.Density, t.Columns())
}

func dimensions(density models.Density, columns int) models.Geometry {
	if columns < 1 {
		columns = 1
	}
	m := metricsFor(density)

	contentWidth := PageWidth - 2*m.margin
	contentHeight := PageHeight - 2*m.margin
	gap := math.Max(MinGap, contentWidth*m.gapFraction)

	cardWidth := (contentWidth - float64(columns-1)*gap) / float64(columns)
	cardHeight := clamp(cardWidth+cardHeightOffset(columns), MinCardHeight, MaxCardHeight)
	cardHeight = round2(cardHeight)

	imageHeight := round2(cardHeight * imageRatio(columns))
	textHeight := round2(cardHeight - imageHeight)

	return models.Geometry{
		PageWidth:     PageWidth,
		PageHeight:    PageHeight,
		Margin:        round2(m.margin),
		ContentWidth:  round2(contentWidth),
		ContentHeight: round2(contentHeight),
		Gap:           round2(gap),
		Columns:       columns,
		CardWidth:     round2(cardWidth),
		CardHeight:    cardHeight,
		ImageHeight:   imageHeight,
		TextHeight:    textHeight,
	}
}

// MaxRows returns how many card rows fit in the content height of g (at least 1)
func MaxRows(g models.Geometry) int {
	if g.CardHeight <= 0 {
		return 1
	}
	rows := int(math.Floor((g.ContentHeight + g.Gap) / (g.CardHeight + g.Gap)))
	if rows < 1 {
		return 1
	}
	return rows
}

// GridHeight is the height used by rows of cards including the gutters between them
func GridHeight(g models.Geometry, rows int) float64 {
	if rows < 1 {
		return 0
	}
	return round2(float64(rows)*g.CardHeight + float64(rows-1)*g.Gap)
}

// RowsFor returns the number of grid rows needed for a page of n slots
func RowsFor(n, columns int) int {
	if columns < 1 {
		columns = 1
	}
	if n < 1 {
		return 0
	}
	return (n + columns - 1) / columns
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
