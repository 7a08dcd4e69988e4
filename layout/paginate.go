package layout

import "catalog-studio/models"

// Paginate splits products into pages of exactly perPage slots. The last page
// is padded with placeholders. perPage below 1 is treated as 1.
func Paginate(products []models.Product, perPage int) []models.Page {
	if perPage < 1 {
		perPage = 1
	}
	pageCount := (len(products) + perPage - 1) / perPage
	pages := make([]models.Page, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		start := i * perPage
		end := start + perPage
		if end > len(products) {
			end = len(products)
		}

		slots := make([]models.Slot, perPage)
		for j := start; j < end; j++ {
			p := products[j]
			slots[j-start] = models.Slot{Product: &p}
		}
		for j := end - start; j < perPage; j++ {
			slots[j] = models.Slot{Placeholder: true}
		}

		pages = append(pages, models.Page{
			Number:      i + 1,
			BreakBefore: i > 0,
			Slots:       slots,
		})
	}

	return pages
}
