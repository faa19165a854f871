package transform

import "warehouse-etl/internal/model"

// OrderRevenue aggregates order items per order: revenue (sum of item
// totals), profit (item total minus product cost times quantity) and total
// quantity, left-joined onto the orders. Orders with no items keep nil
// aggregates. Items whose product is unknown contribute to revenue and
// quantity but not to profit, since their cost is unknown.
func OrderRevenue(orders []model.Order, items []model.OrderItem, products []model.Product) []model.Order {
	costByID := make(map[int64]float64, len(products))
	for _, p := range products {
		costByID[p.ProductID] = p.Cost
	}

	type agg struct {
		total    float64
		profit   float64
		quantity int64
	}
	byOrder := make(map[int64]*agg)
	for _, it := range items {
		a := byOrder[it.OrderID]
		if a == nil {
			a = &agg{}
			byOrder[it.OrderID] = a
		}
		a.total += it.Total
		a.quantity += it.Quantity
		if cost, ok := costByID[it.ProductID]; ok {
			a.profit += it.Total - cost*float64(it.Quantity)
		}
	}

	out := make([]model.Order, len(orders))
	for i, o := range orders {
		if a, ok := byOrder[o.OrderID]; ok {
			total, profit, quantity := a.total, a.profit, a.quantity
			o.Total = &total
			o.Profit = &profit
			o.Quantity = &quantity
		}
		out[i] = o
	}
	return out
}
