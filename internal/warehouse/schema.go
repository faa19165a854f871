package warehouse

// DDL for the warehouse tables. The statements stick to types both Postgres
// and MySQL accept (BIGINT, DOUBLE PRECISION, TIMESTAMP, BOOLEAN); the Mongo
// driver ignores them.

func GetTimeDimensionSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS dim_time (
			date TIMESTAMP PRIMARY KEY,
			day_of_week INT NOT NULL,
			day_of_month INT NOT NULL,
			day_of_year INT NOT NULL,
			week_of_year BIGINT NOT NULL,
			month INT NOT NULL,
			month_name VARCHAR(16) NOT NULL,
			quarter INT NOT NULL,
			year INT NOT NULL,
			is_weekend BOOLEAN NOT NULL,
			is_holiday BOOLEAN NOT NULL
		);
	`
}

func GetCategoriesSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS product_categories (
			category_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			parent_id BIGINT NULL,
			created_at VARCHAR(255)
		);
	`
}

func GetProductsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS products (
			product_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL,
			cost DOUBLE PRECISION NOT NULL,
			category_id BIGINT NOT NULL,
			sku VARCHAR(255) NOT NULL,
			inventory_count BIGINT NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			created_at VARCHAR(255),
			is_active BOOLEAN NOT NULL,
			name_category VARCHAR(255) NULL,
			profit_margin DOUBLE PRECISION NULL
		);
	`
}

func GetCustomersSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS customers (
			customer_id BIGINT PRIMARY KEY,
			email VARCHAR(255) NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			street_address VARCHAR(255),
			city VARCHAR(255),
			state VARCHAR(64),
			zip_code VARCHAR(32),
			country VARCHAR(64),
			phone VARCHAR(64),
			registration_date VARCHAR(255),
			last_login VARCHAR(255),
			total_orders BIGINT NULL,
			lifetime_value DOUBLE PRECISION NULL,
			first_order_date TIMESTAMP NULL,
			last_order_date TIMESTAMP NULL,
			average_order_value DOUBLE PRECISION NULL,
			days_between_orders DOUBLE PRECISION NULL
		);
	`
}

func GetOrdersSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS orders (
			order_id BIGINT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			order_date TIMESTAMP NOT NULL,
			status VARCHAR(64) NOT NULL,
			payment_method VARCHAR(64) NOT NULL,
			shipping_address VARCHAR(255),
			shipping_city VARCHAR(255),
			shipping_state VARCHAR(64),
			shipping_zip VARCHAR(32),
			shipping_country VARCHAR(64),
			processing_date TIMESTAMP NULL,
			shipping_date TIMESTAMP NULL,
			delivery_date TIMESTAMP NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			total DOUBLE PRECISION NULL,
			profit DOUBLE PRECISION NULL,
			quantity BIGINT NULL
		);
	`
}

func GetOrderItemsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS order_items (
			order_item_id BIGINT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity BIGINT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NULL,
			total DOUBLE PRECISION NOT NULL
		);
	`
}

func GetDailySalesSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS daily_sales_aggregation (
			order_date TIMESTAMP NOT NULL,
			product_id BIGINT NOT NULL,
			category_id BIGINT NULL,
			units_sold BIGINT NOT NULL,
			revenue DOUBLE PRECISION NOT NULL,
			order_count BIGINT NOT NULL,
			avg_unit_price DOUBLE PRECISION NOT NULL
		);
	`
}
