package models

import "github.com/shopspring/decimal"

// Product is a single render input. Owned by the caller, never mutated by the engine.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	WholesalePrice  *decimal.Decimal `json:"wholesalePrice,omitempty"`
	WholesaleMinQty int              `json:"wholesaleMinQty,omitempty"` // 0 means not set
	ImageURL        string           `json:"imageUrl,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	Specifications  string           `json:"specifications,omitempty"`
}

// HasWholesale reports whether the product carries a wholesale price
func (p Product) HasWholesale() bool {
	return p.WholesalePrice != nil
}

// BusinessInfo is the catalog owner shown in the header and footer
type BusinessInfo struct {
	Name           string `json:"name"`
	Tagline        string `json:"tagline,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`
	Address        string `json:"address,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	CurrencySymbol string `json:"currencySymbol,omitempty"`
}

// CatalogData is what the data store returns for a stored catalog
type CatalogData struct {
	ID         string       `json:"id"`
	TemplateID string       `json:"templateId"`
	Business   BusinessInfo `json:"business"`
	Products   []Product    `json:"products"`
}

// RenderRequest is the body of a direct render call
type RenderRequest struct {
	TemplateID string       `json:"templateId" binding:"required"`
	Business   BusinessInfo `json:"business"`
	Products   []Product    `json:"products"`
}
