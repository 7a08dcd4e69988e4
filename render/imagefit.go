package render

import (
	"strings"

	"catalog-studio/models"
)

// containIndustries show the full product without cropping
var containIndustries = map[string]bool{
	"jewelry":     true,
	"electronics": true,
	"hardware":    true,
	"furniture":   true,
	"automotive":  true,
	"industrial":  true,
}

// ImageFitFor resolves the image fit mode from the industry tag
func ImageFitFor(industry string) models.ImageFit {
	if containIndustries[strings.ToLower(strings.TrimSpace(industry))] {
		return models.ImageFitContain
	}
	return models.ImageFitCover
}
