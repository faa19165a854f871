package transform

import "warehouse-etl/internal/model"

// EnrichProducts left-joins products to categories and computes the profit
// margin. Products whose category_id does not resolve keep a nil
// CategoryName; products with price 0 keep a nil ProfitMargin since the
// margin is undefined.
func EnrichProducts(products []model.Product, categories []model.Category) []model.Product {
	nameByID := make(map[int64]string, len(categories))
	for _, c := range categories {
		nameByID[c.CategoryID] = c.Name
	}

	out := make([]model.Product, len(products))
	for i, p := range products {
		if name, ok := nameByID[p.CategoryID]; ok {
			p.CategoryName = &name
		}
		if p.Price != 0 {
			m := round4((p.Price - p.Cost) / p.Price)
			p.ProfitMargin = &m
		}
		out[i] = p
	}
	return out
}
