// Package extract reads the raw CSV files and applies the validation and
// cleaning rules. Structural problems (missing columns) and hard rule
// violations (negative prices, non-positive quantities) reject the whole
// batch; malformed emails are nulled, counted and kept.
package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"warehouse-etl/internal/model"
)

// RequiredFiles are the five CSV extracts the pipeline consumes.
var RequiredFiles = []string{
	"product_categories.csv",
	"products.csv",
	"customers.csv",
	"orders.csv",
	"order_items.csv",
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Tables holds the validated, cleaned input tables for one run.
type Tables struct {
	Categories []model.Category
	Products   []model.Product
	Customers  []model.Customer
	Orders     []model.Order
	OrderItems []model.OrderItem

	// InvalidEmails counts customer rows whose email failed validation and
	// was nulled.
	InvalidEmails int

	// CategoryByID is the category adjacency: parent lookups go through this
	// map instead of walking the slice. The tree is assumed acyclic.
	CategoryByID map[int64]*model.Category
}

// CheckFiles verifies that every required CSV exists in dir before any
// parsing starts.
func CheckFiles(dir string) error {
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("required file %s not found in %s", name, dir)
		}
	}
	return nil
}

// ReadAll extracts and validates all five input tables.
func ReadAll(dir string, logger *zap.Logger) (*Tables, error) {
	t := &Tables{}
	var err error

	if t.Categories, err = readCategories(dir); err != nil {
		return nil, err
	}
	var hasCost bool
	if t.Products, hasCost, err = readProducts(dir); err != nil {
		return nil, err
	}
	if !hasCost {
		logger.Warn("products.csv has no cost column; costs default to 0 and profit figures will be overstated")
	}
	if t.Customers, t.InvalidEmails, err = readCustomers(dir); err != nil {
		return nil, err
	}
	if t.InvalidEmails > 0 {
		logger.Warn("found invalid email addresses",
			zap.Int("count", t.InvalidEmails))
	}
	if t.Orders, err = readOrders(dir); err != nil {
		return nil, err
	}
	if t.OrderItems, err = readOrderItems(dir); err != nil {
		return nil, err
	}

	t.CategoryByID = make(map[int64]*model.Category, len(t.Categories))
	for i := range t.Categories {
		t.CategoryByID[t.Categories[i].CategoryID] = &t.Categories[i]
	}

	return t, nil
}

// table is one parsed CSV: a header index plus raw string records.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

func readTable(dir, file string, required []string) (*table, error) {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{File: file, Missing: required}
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		// Strip a UTF-8 BOM from the first header cell if present.
		cols[strings.TrimPrefix(name, "\uFEFF")] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{File: file, Missing: missing}
	}

	return &table{file: file, cols: cols, rows: records[1:]}, nil
}

// get returns the raw cell value, or "" when the column is absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// line converts a data row index to its 1-based line number in the file
// (the header is line 1).
func (t *table) line(i int) int { return i + 2 }

func (t *table) intCell(row []string, i int, col string) (int64, error) {
	s := t.get(row, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %s: %w", t.file, t.line(i), col, err)
	}
	return v, nil
}

func (t *table) floatCell(row []string, i int, col string) (float64, error) {
	s := t.get(row, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %s: %w", t.file, t.line(i), col, err)
	}
	return v, nil
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func (t *table) timeCell(row []string, i int, col string) (*time.Time, error) {
	s := t.get(row, col)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%s line %d: column %s: unparseable date %q", t.file, t.line(i), col, s)
}

func readCategories(dir string) ([]model.Category, error) {
	t, err := readTable(dir, "product_categories.csv",
		[]string{"category_id", "name", "description", "parent_id"})
	if err != nil {
		return nil, err
	}

	out := make([]model.Category, 0, len(t.rows))
	for i, row := range t.rows {
		c := model.Category{
			Name: t.get(row, "name"),
			// Null descriptions become empty strings.
			Description: t.get(row, "description"),
			CreatedAt:   t.get(row, "created_at"),
		}
		if c.CategoryID, err = t.intCell(row, i, "category_id"); err != nil {
			return nil, err
		}
		// parent_id is coerced to a nullable integer; non-numeric values
		// become null rather than failing the batch.
		if s := t.get(row, "parent_id"); s != "" {
			if v, perr := strconv.ParseInt(s, 10, 64); perr == nil {
				c.ParentID = &v
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// readProducts also reports whether the cost column was present at all, so
// the caller can flag a file where every cost silently reads as 0.
func readProducts(dir string) ([]model.Product, bool, error) {
	t, err := readTable(dir, "products.csv",
		[]string{"product_id", "name", "price", "category_id", "sku"})
	if err != nil {
		return nil, false, err
	}
	_, hasCost := t.cols["cost"]

	out := make([]model.Product, 0, len(t.rows))
	for i, row := range t.rows {
		p := model.Product{
			Name:        t.get(row, "name"),
			Description: t.get(row, "description"),
			SKU:         t.get(row, "sku"),
			CreatedAt:   t.get(row, "created_at"),
			IsActive:    true,
		}
		if p.ProductID, err = t.intCell(row, i, "product_id"); err != nil {
			return nil, hasCost, err
		}
		if p.Price, err = t.floatCell(row, i, "price"); err != nil {
			return nil, hasCost, err
		}
		if p.Price < 0 {
			return nil, hasCost, &RuleError{File: t.file, Rule: "negative price", Line: t.line(i)}
		}
		if p.Cost, err = t.floatCell(row, i, "cost"); err != nil {
			return nil, hasCost, err
		}
		if p.CategoryID, err = t.intCell(row, i, "category_id"); err != nil {
			return nil, hasCost, err
		}
		if p.InventoryCount, err = t.intCell(row, i, "inventory_count"); err != nil {
			return nil, hasCost, err
		}
		// Null weight becomes 0.
		if p.Weight, err = t.floatCell(row, i, "weight"); err != nil {
			return nil, hasCost, err
		}
		// Null is_active defaults to true.
		if s := t.get(row, "is_active"); s != "" {
			v, perr := strconv.ParseBool(strings.ToLower(s))
			if perr != nil {
				return nil, hasCost, fmt.Errorf("%s line %d: column is_active: %w", t.file, t.line(i), perr)
			}
			p.IsActive = v
		}
		out = append(out, p)
	}
	return out, hasCost, nil
}

func readCustomers(dir string) ([]model.Customer, int, error) {
	t, err := readTable(dir, "customers.csv",
		[]string{"customer_id", "email", "first_name", "last_name"})
	if err != nil {
		return nil, 0, err
	}

	invalid := 0
	out := make([]model.Customer, 0, len(t.rows))
	for i, row := range t.rows {
		c := model.Customer{
			FirstName:        t.get(row, "first_name"),
			LastName:         t.get(row, "last_name"),
			StreetAddress:    t.get(row, "street_address"),
			City:             t.get(row, "city"),
			State:            t.get(row, "state"),
			ZipCode:          t.get(row, "zip_code"),
			Country:          t.get(row, "country"),
			Phone:            t.get(row, "phone"),
			RegistrationDate: t.get(row, "registration_date"),
			LastLogin:        t.get(row, "last_login"),
		}
		if c.CustomerID, err = t.intCell(row, i, "customer_id"); err != nil {
			return nil, 0, err
		}
		// Malformed emails are nulled and counted; the row is kept.
		if email := t.get(row, "email"); emailPattern.MatchString(email) {
			c.Email = &email
		} else {
			invalid++
		}
		out = append(out, c)
	}
	return out, invalid, nil
}

func readOrders(dir string) ([]model.Order, error) {
	t, err := readTable(dir, "orders.csv",
		[]string{"order_id", "customer_id", "order_date", "status", "payment_method", "total_amount"})
	if err != nil {
		return nil, err
	}

	out := make([]model.Order, 0, len(t.rows))
	for i, row := range t.rows {
		o := model.Order{
			Status:          t.get(row, "status"),
			PaymentMethod:   t.get(row, "payment_method"),
			ShippingAddress: t.get(row, "shipping_address"),
			ShippingCity:    t.get(row, "shipping_city"),
			ShippingState:   t.get(row, "shipping_state"),
			ShippingZip:     t.get(row, "shipping_zip"),
			ShippingCountry: t.get(row, "shipping_country"),
		}
		if o.OrderID, err = t.intCell(row, i, "order_id"); err != nil {
			return nil, err
		}
		if o.CustomerID, err = t.intCell(row, i, "customer_id"); err != nil {
			return nil, err
		}
		d, err := t.timeCell(row, i, "order_date")
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("%s line %d: column order_date: empty", t.file, t.line(i))
		}
		o.OrderDate = *d
		if o.ProcessingDate, err = t.timeCell(row, i, "processing_date"); err != nil {
			return nil, err
		}
		if o.ShippingDate, err = t.timeCell(row, i, "shipping_date"); err != nil {
			return nil, err
		}
		if o.DeliveryDate, err = t.timeCell(row, i, "delivery_date"); err != nil {
			return nil, err
		}
		if o.TotalAmount, err = t.floatCell(row, i, "total_amount"); err != nil {
			return nil, err
		}
		if o.TotalAmount < 0 {
			return nil, &RuleError{File: t.file, Rule: "negative order amount", Line: t.line(i)}
		}
		out = append(out, o)
	}
	return out, nil
}

func readOrderItems(dir string) ([]model.OrderItem, error) {
	t, err := readTable(dir, "order_items.csv",
		[]string{"order_item_id", "order_id", "product_id", "quantity", "price", "total"})
	if err != nil {
		return nil, err
	}

	out := make([]model.OrderItem, 0, len(t.rows))
	for i, row := range t.rows {
		var it model.OrderItem
		if it.OrderItemID, err = t.intCell(row, i, "order_item_id"); err != nil {
			return nil, err
		}
		if it.OrderID, err = t.intCell(row, i, "order_id"); err != nil {
			return nil, err
		}
		if it.ProductID, err = t.intCell(row, i, "product_id"); err != nil {
			return nil, err
		}
		if it.Quantity, err = t.intCell(row, i, "quantity"); err != nil {
			return nil, err
		}
		if it.Quantity <= 0 {
			return nil, &RuleError{File: t.file, Rule: "zero or negative quantity", Line: t.line(i)}
		}
		if it.Price, err = t.floatCell(row, i, "price"); err != nil {
			return nil, err
		}
		if it.Price < 0 {
			return nil, &RuleError{File: t.file, Rule: "negative price", Line: t.line(i)}
		}
		if s := t.get(row, "discount"); s != "" {
			v, perr := strconv.ParseFloat(s, 64)
			if perr != nil {
				return nil, fmt.Errorf("%s line %d: column discount: %w", t.file, t.line(i), perr)
			}
			it.Discount = &v
		}
		if it.Total, err = t.floatCell(row, i, "total"); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
