package layout

import "catalog-studio/models"

// Typography returns the font scale and line clamps for the template density.
// Unknown densities use the medium scale.
func Typography(t models.TemplateDefinition) models.Typography {
	switch t.Density.Normalize() {
	case models.DensityHigh:
		return models.Typography{
			Header: 18, Title: 9, Price: 10, Description: 7, Info: 6.5,
			NameLines: 1, DescriptionLines: 1, SpecsMaxHeight: 6,
		}
	case models.DensityLow:
		return models.Typography{
			Header: 26, Title: 13, Price: 14, Description: 9, Info: 8,
			NameLines: 2, DescriptionLines: 3, SpecsMaxHeight: 14,
		}
	default:
		return models.Typography{
			Header: 22, Title: 11, Price: 12, Description: 8, Info: 7,
			NameLines: 2, DescriptionLines: 2, SpecsMaxHeight: 10,
		}
	}
}

// PointToMM converts typographic points to millimeters
const PointToMM = 0.3528

// lineHeight is the leading multiplier used for text height estimates
const lineHeight = 1.3

// cardPadding is the vertical padding of the card text area, mm
const cardPadding = 4.0

// EstimateTextHeight estimates the height in mm of the text stack of a fully
// populated card under the given content flags.
func EstimateTextHeight(ty models.Typography, c models.ContentFlags) float64 {
	pt := float64(ty.NameLines)*ty.Title + ty.Price
	if c.ShowCategory {
		pt += ty.Info
	}
	if c.ShowWholesalePrice {
		pt += ty.Info
	}
	if c.ShowWholesaleMinQty {
		pt += ty.Info
	}
	if c.ShowDescription {
		pt += float64(ty.DescriptionLines) * ty.Description
	}
	if c.ShowSKU {
		pt += ty.Info
	}
	mm := pt*PointToMM*lineHeight + cardPadding
	if c.ShowSpecifications {
		mm += ty.SpecsMaxHeight
	}
	return round2(mm)
}
