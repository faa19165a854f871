// Package quality computes advisory data-quality metrics over the validated
// tables and renders the run report. Nothing here gates the load phase.
package quality

import (
	"time"

	"warehouse-etl/internal/model"
)

// Metrics describes one table's data quality: record volume, per-column
// null counts and business-rule violation counts.
type Metrics struct {
	TotalRecords           int
	InvalidRecords         int
	MissingValues          map[string]int
	ValidationErrors       []string
	BusinessRuleViolations map[string]int
}

func newMetrics(total int) Metrics {
	return Metrics{
		TotalRecords:           total,
		MissingValues:          make(map[string]int),
		BusinessRuleViolations: make(map[string]int),
	}
}

func CheckCategories(rows []model.Category) Metrics {
	m := newMetrics(len(rows))
	for _, r := range rows {
		if r.ParentID == nil {
			m.MissingValues["parent_id"]++
		}
	}
	return m
}

func CheckProducts(rows []model.Product) Metrics {
	m := newMetrics(len(rows))
	for _, r := range rows {
		if r.Price < 0 {
			m.BusinessRuleViolations["negative_prices"]++
		}
	}
	return m
}

func CheckCustomers(rows []model.Customer) Metrics {
	m := newMetrics(len(rows))
	for _, r := range rows {
		if r.Email == nil {
			m.MissingValues["email"]++
			m.BusinessRuleViolations["invalid_emails"]++
		}
	}
	return m
}

func CheckOrders(rows []model.Order, now time.Time) Metrics {
	m := newMetrics(len(rows))
	for _, r := range rows {
		if r.ProcessingDate == nil {
			m.MissingValues["processing_date"]++
		}
		if r.ShippingDate == nil {
			m.MissingValues["shipping_date"]++
		}
		if r.DeliveryDate == nil {
			m.MissingValues["delivery_date"]++
		}
		if r.OrderDate.After(now) {
			m.BusinessRuleViolations["future_dates"]++
		}
	}
	return m
}

func CheckOrderItems(rows []model.OrderItem) Metrics {
	m := newMetrics(len(rows))
	for _, r := range rows {
		if r.Discount == nil {
			m.MissingValues["discount"]++
		} else if *r.Discount < 0 || *r.Discount > 1 {
			m.BusinessRuleViolations["invalid_discounts"]++
		}
		if r.Price < 0 {
			m.BusinessRuleViolations["negative_prices"]++
		}
		if r.Quantity <= 0 {
			m.BusinessRuleViolations["invalid_quantities"]++
		}
	}
	return m
}
