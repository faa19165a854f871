package transform

import (
	"testing"
	"time"

	"warehouse-etl/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

func TestEnrichProducts(t *testing.T) {
	products := []model.Product{
		{ProductID: 1, Price: 10, Cost: 4, CategoryID: 1},
		{ProductID: 2, Price: 0, Cost: 1, CategoryID: 99},
		{ProductID: 3, Price: 3, Cost: 1, CategoryID: 1},
	}
	categories := []model.Category{{CategoryID: 1, Name: "Electronics"}}

	out := EnrichProducts(products, categories)

	if out[0].ProfitMargin == nil || *out[0].ProfitMargin != 0.6 {
		t.Errorf("margin[0] = %v, want 0.6", out[0].ProfitMargin)
	}
	if out[1].ProfitMargin != nil {
		t.Errorf("margin for price=0 should be nil, got %v", *out[1].ProfitMargin)
	}
	if out[2].ProfitMargin == nil || *out[2].ProfitMargin != 0.6667 {
		t.Errorf("margin[2] = %v, want 0.6667 (rounded to 4 decimals)", out[2].ProfitMargin)
	}

	if out[0].CategoryName == nil || *out[0].CategoryName != "Electronics" {
		t.Errorf("category name join failed: %v", out[0].CategoryName)
	}
	if out[1].CategoryName != nil {
		t.Errorf("orphan product should keep nil category name, got %q", *out[1].CategoryName)
	}

	// Inputs must not be mutated.
	if products[0].ProfitMargin != nil || products[0].CategoryName != nil {
		t.Error("EnrichProducts mutated its input")
	}
}

func TestOrderRevenue(t *testing.T) {
	products := []model.Product{
		{ProductID: 1, Cost: 4},
		{ProductID: 2, Cost: 1},
	}
	orders := []model.Order{
		{OrderID: 1, OrderDate: date(2024, 3, 1)},
		{OrderID: 2, OrderDate: date(2024, 3, 2)},
		{OrderID: 3, OrderDate: date(2024, 3, 3)},
	}
	items := []model.OrderItem{
		{OrderItemID: 1, OrderID: 1, ProductID: 1, Quantity: 2, Total: 20},
		{OrderItemID: 2, OrderID: 1, ProductID: 2, Quantity: 3, Total: 30},
		{OrderItemID: 3, OrderID: 3, ProductID: 999, Quantity: 1, Total: 10},
	}

	out := OrderRevenue(orders, items, products)

	if out[0].Total == nil || *out[0].Total != 50 {
		t.Errorf("order 1 total = %v, want 50", out[0].Total)
	}
	if out[0].Quantity == nil || *out[0].Quantity != 5 {
		t.Errorf("order 1 quantity = %v, want 5", out[0].Quantity)
	}
	// profit = (20 - 4*2) + (30 - 1*3) = 39
	if out[0].Profit == nil || *out[0].Profit != 39 {
		t.Errorf("order 1 profit = %v, want 39", out[0].Profit)
	}

	if out[1].Total != nil || out[1].Profit != nil || out[1].Quantity != nil {
		t.Error("order with no items should keep nil aggregates")
	}

	// Unknown product: revenue and quantity counted, profit contribution skipped.
	if out[2].Total == nil || *out[2].Total != 10 {
		t.Errorf("order 3 total = %v, want 10", out[2].Total)
	}
	if out[2].Profit == nil || *out[2].Profit != 0 {
		t.Errorf("order 3 profit = %v, want 0", out[2].Profit)
	}
}

func TestEnrichCustomers(t *testing.T) {
	customers := []model.Customer{
		{CustomerID: 1},
		{CustomerID: 2},
		{CustomerID: 3},
	}
	orders := []model.Order{
		{OrderID: 1, CustomerID: 1, OrderDate: date(2024, 3, 1), Status: model.StatusDelivered, Total: f64(50)},
		{OrderID: 2, CustomerID: 1, OrderDate: date(2024, 3, 11), Status: model.StatusShipped, Total: f64(30)},
		{OrderID: 3, CustomerID: 2, OrderDate: date(2024, 3, 5), Status: model.StatusInTransit, Total: f64(20)},
		{OrderID: 4, CustomerID: 3, OrderDate: date(2024, 3, 6), Status: model.StatusCancelled, Total: f64(99)},
	}

	out := EnrichCustomers(customers, orders)

	c1 := out[0]
	if c1.TotalOrders == nil || *c1.TotalOrders != 2 {
		t.Fatalf("customer 1 total orders = %v, want 2", c1.TotalOrders)
	}
	if *c1.LifetimeValue != 80 {
		t.Errorf("customer 1 lifetime value = %v, want 80", *c1.LifetimeValue)
	}
	if *c1.AverageOrderValue != 40 {
		t.Errorf("customer 1 average order value = %v, want 40", *c1.AverageOrderValue)
	}
	// 10 days between first and last over 2 orders.
	if *c1.DaysBetweenOrders != 5 {
		t.Errorf("customer 1 days between orders = %v, want 5", *c1.DaysBetweenOrders)
	}
	if !c1.FirstOrderDate.Equal(date(2024, 3, 1)) || !c1.LastOrderDate.Equal(date(2024, 3, 11)) {
		t.Errorf("customer 1 first/last = %v/%v", c1.FirstOrderDate, c1.LastOrderDate)
	}

	// Single qualifying order: zero days between orders.
	c2 := out[1]
	if c2.TotalOrders == nil || *c2.TotalOrders != 1 {
		t.Fatalf("customer 2 total orders = %v, want 1", c2.TotalOrders)
	}
	if *c2.DaysBetweenOrders != 0 {
		t.Errorf("customer 2 days between orders = %v, want 0", *c2.DaysBetweenOrders)
	}

	// Only a cancelled order: every derived field stays nil.
	c3 := out[2]
	if c3.TotalOrders != nil || c3.LifetimeValue != nil || c3.FirstOrderDate != nil ||
		c3.LastOrderDate != nil || c3.AverageOrderValue != nil || c3.DaysBetweenOrders != nil {
		t.Errorf("customer 3 should have all nil derived fields: %+v", c3)
	}
}

func TestDailySales(t *testing.T) {
	orders := []model.Order{
		{OrderID: 1, OrderDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), Status: model.StatusDelivered},
		{OrderID: 2, OrderDate: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), Status: model.StatusDelivered},
		{OrderID: 3, OrderDate: date(2024, 3, 2), Status: model.StatusCancelled},
		{OrderID: 4, OrderDate: date(2024, 3, 2), Status: model.StatusReturned},
	}
	products := []model.Product{
		{ProductID: 1, CategoryID: 10},
		{ProductID: 2, CategoryID: 20},
	}
	items := []model.OrderItem{
		{OrderItemID: 1, OrderID: 1, ProductID: 1, Quantity: 2, Total: 20},
		{OrderItemID: 2, OrderID: 2, ProductID: 1, Quantity: 1, Total: 10},
		{OrderItemID: 3, OrderID: 1, ProductID: 2, Quantity: 3, Total: 30},
		{OrderItemID: 4, OrderID: 3, ProductID: 1, Quantity: 5, Total: 50},
		{OrderItemID: 5, OrderID: 4, ProductID: 2, Quantity: 1, Total: 10},
	}

	out := DailySales(orders, items, products)

	if len(out) != 2 {
		t.Fatalf("groups = %d, want 2 (cancelled/returned rows excluded)", len(out))
	}

	g1 := out[0]
	if g1.ProductID != 1 || !g1.OrderDate.Equal(date(2024, 3, 1)) {
		t.Fatalf("unexpected first group: %+v", g1)
	}
	if g1.UnitsSold != 3 || g1.Revenue != 30 || g1.OrderCount != 2 {
		t.Errorf("group (03-01, p1): units=%d revenue=%v orders=%d, want 3/30/2",
			g1.UnitsSold, g1.Revenue, g1.OrderCount)
	}
	if g1.AvgUnitPrice != 10 {
		t.Errorf("avg unit price = %v, want 10", g1.AvgUnitPrice)
	}
	if g1.CategoryID == nil || *g1.CategoryID != 10 {
		t.Errorf("category = %v, want 10", g1.CategoryID)
	}

	g2 := out[1]
	if g2.ProductID != 2 || g2.UnitsSold != 3 || g2.Revenue != 30 || g2.OrderCount != 1 {
		t.Errorf("unexpected second group: %+v", g2)
	}
}

func TestTimeDimension(t *testing.T) {
	orders := []model.Order{
		{OrderID: 1, OrderDate: time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)},
		{OrderID: 2, OrderDate: date(2024, 3, 4)},
	}

	out := TimeDimension(orders)

	if len(out) != 4 {
		t.Fatalf("rows = %d, want 4 (one per calendar day, inclusive)", len(out))
	}
	for i, r := range out {
		want := date(2024, 3, 1+i)
		if !r.Date.Equal(want) {
			t.Errorf("row %d date = %v, want %v", i, r.Date, want)
		}
	}

	// 2024-03-01 is a Friday (Monday-based day 4); 03-02/03-03 are weekend.
	if out[0].DayOfWeek != 4 || out[0].IsWeekend {
		t.Errorf("friday row wrong: %+v", out[0])
	}
	if out[1].DayOfWeek != 5 || !out[1].IsWeekend {
		t.Errorf("saturday row wrong: %+v", out[1])
	}
	if out[2].DayOfWeek != 6 || !out[2].IsWeekend {
		t.Errorf("sunday row wrong: %+v", out[2])
	}

	if out[0].Month != 3 || out[0].MonthName != "March" || out[0].Quarter != 1 || out[0].Year != 2024 {
		t.Errorf("calendar breakdown wrong: %+v", out[0])
	}
	if out[0].DayOfYear != 61 {
		t.Errorf("day of year = %d, want 61", out[0].DayOfYear)
	}
	for _, r := range out {
		if r.IsHoliday {
			t.Error("is_holiday must always be false")
		}
	}
}

func TestTimeDimensionEmpty(t *testing.T) {
	if out := TimeDimension(nil); out != nil {
		t.Errorf("expected nil for no orders, got %d rows", len(out))
	}
}
