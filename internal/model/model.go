// Package model defines the typed rows that flow through the pipeline.
// Nullable columns are pointers; a nil pointer is written to the warehouse
// as NULL.
package model

import "time"

// Order statuses that count toward customer metrics.
const (
	StatusDelivered = "Delivered"
	StatusInTransit = "In Transit"
	StatusShipped   = "Shipped"
	StatusCancelled = "Cancelled"
	StatusReturned  = "Returned"
)

type Category struct {
	CategoryID  int64
	Name        string
	Description string
	ParentID    *int64
	CreatedAt   string
}

type Product struct {
	ProductID      int64
	Name           string
	Description    string
	Price          float64
	Cost           float64
	CategoryID     int64
	SKU            string
	InventoryCount int64
	Weight         float64
	CreatedAt      string
	IsActive       bool

	// Derived by the transform engine. CategoryName stays nil for products
	// whose category_id does not resolve; ProfitMargin stays nil when
	// price is zero.
	CategoryName *string
	ProfitMargin *float64
}

type Customer struct {
	CustomerID       int64
	Email            *string
	FirstName        string
	LastName         string
	StreetAddress    string
	City             string
	State            string
	ZipCode          string
	Country          string
	Phone            string
	RegistrationDate string
	LastLogin        string

	// Derived from orders in {Delivered, In Transit, Shipped}. All nil for
	// customers with no qualifying orders.
	TotalOrders       *int64
	LifetimeValue     *float64
	FirstOrderDate    *time.Time
	LastOrderDate     *time.Time
	AverageOrderValue *float64
	DaysBetweenOrders *float64
}

type Order struct {
	OrderID         int64
	CustomerID      int64
	OrderDate       time.Time
	Status          string
	PaymentMethod   string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string
	ProcessingDate  *time.Time
	ShippingDate    *time.Time
	DeliveryDate    *time.Time
	TotalAmount     float64

	// Derived from order items. All nil for orders with no items.
	Total    *float64
	Profit   *float64
	Quantity *int64
}

type OrderItem struct {
	OrderItemID int64
	OrderID     int64
	ProductID   int64
	Quantity    int64
	Price       float64
	Discount    *float64
	Total       float64
}

// DailySale is one row of the daily sales aggregation fact table, keyed by
// (calendar day, product, category).
type DailySale struct {
	OrderDate    time.Time
	ProductID    int64
	CategoryID   *int64
	UnitsSold    int64
	Revenue      float64
	OrderCount   int64
	AvgUnitPrice float64
}

// TimeRow is one calendar day of the time dimension. DayOfWeek is
// zero-based with Monday = 0, so weekend days are 5 and 6.
type TimeRow struct {
	Date       time.Time
	DayOfWeek  int
	DayOfMonth int
	DayOfYear  int
	WeekOfYear int
	Month      int
	MonthName  string
	Quarter    int
	Year       int
	IsWeekend  bool
	IsHoliday  bool
}
