package transform

import (
	"time"

	"warehouse-etl/internal/model"
)

// qualifiesForCustomerMetrics reports whether an order counts toward
// customer lifetime metrics.
func qualifiesForCustomerMetrics(status string) bool {
	switch status {
	case model.StatusDelivered, model.StatusInTransit, model.StatusShipped:
		return true
	}
	return false
}

// EnrichCustomers derives per-customer order metrics from the
// revenue-enriched orders, considering only orders in
// {Delivered, In Transit, Shipped}. Customers with no qualifying orders keep
// all derived fields nil. Customers with a single qualifying order get
// DaysBetweenOrders 0.
func EnrichCustomers(customers []model.Customer, orders []model.Order) []model.Customer {
	type agg struct {
		count    int64
		lifetime float64
		first    time.Time
		last     time.Time
	}
	byCustomer := make(map[int64]*agg)
	for _, o := range orders {
		if !qualifiesForCustomerMetrics(o.Status) {
			continue
		}
		a := byCustomer[o.CustomerID]
		if a == nil {
			a = &agg{first: o.OrderDate, last: o.OrderDate}
			byCustomer[o.CustomerID] = a
		}
		a.count++
		if o.Total != nil {
			a.lifetime += *o.Total
		}
		if o.OrderDate.Before(a.first) {
			a.first = o.OrderDate
		}
		if o.OrderDate.After(a.last) {
			a.last = o.OrderDate
		}
	}

	out := make([]model.Customer, len(customers))
	for i, c := range customers {
		if a, ok := byCustomer[c.CustomerID]; ok {
			count, lifetime := a.count, a.lifetime
			first, last := a.first, a.last
			avg := lifetime / float64(count)
			// Whole days between first and last order, spread over the
			// order count.
			days := float64(int64(last.Sub(first).Hours()/24)) / float64(count)

			c.TotalOrders = &count
			c.LifetimeValue = &lifetime
			c.FirstOrderDate = &first
			c.LastOrderDate = &last
			c.AverageOrderValue = &avg
			c.DaysBetweenOrders = &days
		}
		out[i] = c
	}
	return out
}
