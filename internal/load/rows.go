package load

import (
	"warehouse-etl/internal/model"
	"warehouse-etl/internal/warehouse"
)

// Builders converting typed rows into Table payloads. Nullable fields are
// passed through as pointers; a nil pointer reaches the driver as NULL.

func TimeDimensionTable(rows []model.TimeRow) Table {
	t := Table{
		Name: "dim_time",
		DDL:  warehouse.GetTimeDimensionSchema(),
		Columns: []string{
			"date", "day_of_week", "day_of_month", "day_of_year",
			"week_of_year", "month", "month_name", "quarter", "year",
			"is_weekend", "is_holiday",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Date, r.DayOfWeek, r.DayOfMonth, r.DayOfYear,
			r.WeekOfYear, r.Month, r.MonthName, r.Quarter, r.Year,
			r.IsWeekend, r.IsHoliday,
		})
	}
	return t
}

func CategoriesTable(rows []model.Category) Table {
	t := Table{
		Name:    "product_categories",
		DDL:     warehouse.GetCategoriesSchema(),
		Columns: []string{"category_id", "name", "description", "parent_id", "created_at"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.CategoryID, r.Name, r.Description, r.ParentID, r.CreatedAt,
		})
	}
	return t
}

func ProductsTable(rows []model.Product) Table {
	t := Table{
		Name: "products",
		DDL:  warehouse.GetProductsSchema(),
		Columns: []string{
			"product_id", "name", "description", "price", "cost",
			"category_id", "sku", "inventory_count", "weight",
			"created_at", "is_active", "name_category", "profit_margin",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.ProductID, r.Name, r.Description, r.Price, r.Cost,
			r.CategoryID, r.SKU, r.InventoryCount, r.Weight,
			r.CreatedAt, r.IsActive, r.CategoryName, r.ProfitMargin,
		})
	}
	return t
}

func CustomersTable(rows []model.Customer) Table {
	t := Table{
		Name: "customers",
		DDL:  warehouse.GetCustomersSchema(),
		Columns: []string{
			"customer_id", "email", "first_name", "last_name",
			"street_address", "city", "state", "zip_code", "country",
			"phone", "registration_date", "last_login", "total_orders",
			"lifetime_value", "first_order_date", "last_order_date",
			"average_order_value", "days_between_orders",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.CustomerID, r.Email, r.FirstName, r.LastName,
			r.StreetAddress, r.City, r.State, r.ZipCode, r.Country,
			r.Phone, r.RegistrationDate, r.LastLogin, r.TotalOrders,
			r.LifetimeValue, r.FirstOrderDate, r.LastOrderDate,
			r.AverageOrderValue, r.DaysBetweenOrders,
		})
	}
	return t
}

func OrdersTable(rows []model.Order) Table {
	t := Table{
		Name: "orders",
		DDL:  warehouse.GetOrdersSchema(),
		Columns: []string{
			"order_id", "customer_id", "order_date", "status",
			"payment_method", "shipping_address", "shipping_city",
			"shipping_state", "shipping_zip", "shipping_country",
			"processing_date", "shipping_date", "delivery_date",
			"total_amount", "total", "profit", "quantity",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderID, r.CustomerID, r.OrderDate, r.Status,
			r.PaymentMethod, r.ShippingAddress, r.ShippingCity,
			r.ShippingState, r.ShippingZip, r.ShippingCountry,
			r.ProcessingDate, r.ShippingDate, r.DeliveryDate,
			r.TotalAmount, r.Total, r.Profit, r.Quantity,
		})
	}
	return t
}

func OrderItemsTable(rows []model.OrderItem) Table {
	t := Table{
		Name: "order_items",
		DDL:  warehouse.GetOrderItemsSchema(),
		Columns: []string{
			"order_item_id", "order_id", "product_id", "quantity",
			"price", "discount", "total",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderItemID, r.OrderID, r.ProductID, r.Quantity,
			r.Price, r.Discount, r.Total,
		})
	}
	return t
}

func DailySalesTable(rows []model.DailySale) Table {
	t := Table{
		Name: "daily_sales_aggregation",
		DDL:  warehouse.GetDailySalesSchema(),
		Columns: []string{
			"order_date", "product_id", "category_id", "units_sold",
			"revenue", "order_count", "avg_unit_price",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderDate, r.ProductID, r.CategoryID, r.UnitsSold,
			r.Revenue, r.OrderCount, r.AvgUnitPrice,
		})
	}
	return t
}
