package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"catalog-studio/models"
)

// ErrCatalogNotFound is returned when no catalog has the requested id
var ErrCatalogNotFound = errors.New("catalog not found")

// CatalogRepository reads catalogs and their products
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

type catalogRow struct {
	ID             string `db:"id"`
	TemplateID     string `db:"template_id"`
	BusinessName   string `db:"business_name"`
	Tagline        string `db:"tagline"`
	Phone          string `db:"phone"`
	Email          string `db:"email"`
	Website        string `db:"website"`
	Address        string `db:"address"`
	LogoURL        string `db:"logo_url"`
	CurrencySymbol string `db:"currency_symbol"`
}

type productRow struct {
	ProductID       string              `db:"product_id"`
	Name            string              `db:"name"`
	Description     string              `db:"description"`
	Category        string              `db:"category"`
	Price           decimal.Decimal     `db:"price"`
	WholesalePrice  decimal.NullDecimal `db:"wholesale_price"`
	WholesaleMinQty int                 `db:"wholesale_min_qty"`
	ImageURL        string              `db:"image_url"`
	SKU             string              `db:"sku"`
	Specifications  string              `db:"specifications"`
}

// GetCatalog returns the business info and ordered products of a catalog
func (r *CatalogRepository) GetCatalog(ctx context.Context, id string) (*models.CatalogData, error) {
	var c catalogRow
	err := r.db.GetContext(ctx, &c, `
		SELECT id, template_id, business_name, tagline, phone, email,
		       website, address, logo_url, currency_symbol
		FROM catalogs
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrCatalogNotFound, "id %q", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query catalog")
	}

	var rows []productRow
	err = r.db.SelectContext(ctx, &rows, `
		SELECT product_id, name, description, category, price, wholesale_price,
		       wholesale_min_qty, image_url, sku, specifications
		FROM catalog_products
		WHERE catalog_id = $1
		ORDER BY position ASC`, id)
	if err != nil {
		return nil, errors.Wrap(err, "query catalog products")
	}

	data := &models.CatalogData{
		ID:         c.ID,
		TemplateID: c.TemplateID,
		Business: models.BusinessInfo{
			Name:           c.BusinessName,
			Tagline:        c.Tagline,
			Phone:          c.Phone,
			Email:          c.Email,
			Website:        c.Website,
			Address:        c.Address,
			LogoURL:        c.LogoURL,
			CurrencySymbol: c.CurrencySymbol,
		},
		Products: make([]models.Product, 0, len(rows)),
	}
	for _, row := range rows {
		data.Products = append(data.Products, row.toProduct())
	}

	return data, nil
}

func (row productRow) toProduct() models.Product {
	p := models.Product{
		ID:              row.ProductID,
		Name:            strings.TrimSpace(row.Name),
		Description:     strings.TrimSpace(row.Description),
		Category:        capitalizeWords(row.Category),
		Price:           row.Price,
		WholesaleMinQty: row.WholesaleMinQty,
		ImageURL:        strings.TrimSpace(row.ImageURL),
		SKU:             strings.ToUpper(strings.TrimSpace(row.SKU)),
		Specifications:  strings.TrimSpace(row.Specifications),
	}
	if row.WholesalePrice.Valid {
		w := row.WholesalePrice.Decimal
		p.WholesalePrice = &w
	}
	if p.WholesaleMinQty < 0 {
		p.WholesaleMinQty = 0
	}
	return p
}

// capitalizeWords title-cases each word and collapses runs of whitespace
func capitalizeWords(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
