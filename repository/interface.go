package repository

import (
	"context"

	"catalog-studio/models"
)

// CatalogRepositoryInterface loads stored catalogs
type CatalogRepositoryInterface interface {
	GetCatalog(ctx context.Context, id string) (*models.CatalogData, error)
}

// TemplateRepositoryInterface persists corrected template definitions
type TemplateRepositoryInterface interface {
	ListOverrides(ctx context.Context) ([]models.TemplateDefinition, error)
	SaveOverride(ctx context.Context, def models.TemplateDefinition, score int) error
}
