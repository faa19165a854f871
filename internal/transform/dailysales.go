package transform

import (
	"sort"
	"time"

	"warehouse-etl/internal/model"
)

// DailySales aggregates order items into one row per (calendar day, product,
// category), excluding orders in {Cancelled, Returned}. It reads the raw
// orders, items and products, not the enriched versions. Items whose order
// or product cannot be resolved carry no usable group key and are dropped.
func DailySales(orders []model.Order, items []model.OrderItem, products []model.Product) []model.DailySale {
	type orderInfo struct {
		date   time.Time
		status string
	}
	orderByID := make(map[int64]orderInfo, len(orders))
	for _, o := range orders {
		orderByID[o.OrderID] = orderInfo{date: o.OrderDate, status: o.Status}
	}
	categoryByProduct := make(map[int64]int64, len(products))
	for _, p := range products {
		categoryByProduct[p.ProductID] = p.CategoryID
	}

	type key struct {
		day        time.Time
		productID  int64
		categoryID int64
	}
	type agg struct {
		units   int64
		revenue float64
		orders  map[int64]struct{}
	}
	groups := make(map[key]*agg)

	for _, it := range items {
		o, ok := orderByID[it.OrderID]
		if !ok {
			continue
		}
		if o.status == model.StatusCancelled || o.status == model.StatusReturned {
			continue
		}
		categoryID, ok := categoryByProduct[it.ProductID]
		if !ok {
			continue
		}
		day := time.Date(o.date.Year(), o.date.Month(), o.date.Day(), 0, 0, 0, 0, time.UTC)
		k := key{day: day, productID: it.ProductID, categoryID: categoryID}
		a := groups[k]
		if a == nil {
			a = &agg{orders: make(map[int64]struct{})}
			groups[k] = a
		}
		a.units += it.Quantity
		a.revenue += it.Total
		a.orders[it.OrderID] = struct{}{}
	}

	out := make([]model.DailySale, 0, len(groups))
	for k, a := range groups {
		categoryID := k.categoryID
		out = append(out, model.DailySale{
			OrderDate:    k.day,
			ProductID:    k.productID,
			CategoryID:   &categoryID,
			UnitsSold:    a.units,
			Revenue:      a.revenue,
			OrderCount:   int64(len(a.orders)),
			AvgUnitPrice: a.revenue / float64(a.units),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].OrderDate.Before(out[j].OrderDate)
		}
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return *out[i].CategoryID < *out[j].CategoryID
	})
	return out
}
