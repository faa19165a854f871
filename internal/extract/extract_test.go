package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func validFixture() map[string]string {
	return map[string]string{
		"product_categories.csv": "category_id,name,description,parent_id\n" +
			"1,Electronics,,\n" +
			"2,Phones,Smart phones,1\n" +
			"3,Cables,,abc\n",
		"products.csv": "product_id,name,description,price,cost,category_id,sku,inventory_count,weight,is_active\n" +
			"1,Widget,,10.00,4.00,1,SKU-1,5,,\n" +
			"2,Gadget,A gadget,0,1.00,99,SKU-2,3,2.5,false\n",
		"customers.csv": "customer_id,email,first_name,last_name\n" +
			"1,alice@example.com,Alice,Smith\n" +
			"2,not-an-email,Bob,Jones\n",
		"orders.csv": "order_id,customer_id,order_date,status,payment_method,total_amount,processing_date\n" +
			"1,1,2024-03-01 10:00:00,Delivered,card,50.00,2024-03-02\n" +
			"2,2,2024-03-05,Cancelled,card,30.00,\n",
		"order_items.csv": "order_item_id,order_id,product_id,quantity,price,discount,total\n" +
			"1,1,1,2,10.00,0,20.00\n" +
			"2,1,2,3,10.00,,30.00\n" +
			"3,2,1,1,30.00,0.1,30.00\n",
	}
}

func TestReadAllValid(t *testing.T) {
	dir := writeFixture(t, validFixture())

	tables, err := ReadAll(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if got := len(tables.Categories); got != 3 {
		t.Errorf("categories = %d, want 3", got)
	}
	if got := len(tables.Products); got != 2 {
		t.Errorf("products = %d, want 2", got)
	}
	if got := len(tables.Orders); got != 2 {
		t.Errorf("orders = %d, want 2", got)
	}
	if got := len(tables.OrderItems); got != 3 {
		t.Errorf("order_items = %d, want 3", got)
	}

	// parent_id coercion: numeric resolves, non-numeric becomes null.
	if tables.Categories[1].ParentID == nil || *tables.Categories[1].ParentID != 1 {
		t.Errorf("expected parent_id 1 for Phones, got %v", tables.Categories[1].ParentID)
	}
	if tables.Categories[2].ParentID != nil {
		t.Errorf("expected nil parent_id for non-numeric value, got %v", *tables.Categories[2].ParentID)
	}

	// Cleaning defaults.
	if tables.Products[0].Weight != 0 {
		t.Errorf("null weight should default to 0, got %v", tables.Products[0].Weight)
	}
	if !tables.Products[0].IsActive {
		t.Error("null is_active should default to true")
	}
	if tables.Products[1].IsActive {
		t.Error("is_active=false should be kept")
	}

	// Email validation: row kept, field nulled, occurrence counted.
	if tables.InvalidEmails != 1 {
		t.Errorf("invalid emails = %d, want 1", tables.InvalidEmails)
	}
	if got := len(tables.Customers); got != 2 {
		t.Fatalf("customers = %d, want 2 (invalid-email row must be kept)", got)
	}
	if tables.Customers[0].Email == nil || *tables.Customers[0].Email != "alice@example.com" {
		t.Errorf("valid email should be kept, got %v", tables.Customers[0].Email)
	}
	if tables.Customers[1].Email != nil {
		t.Errorf("invalid email should be nulled, got %q", *tables.Customers[1].Email)
	}

	// Date parsing.
	if tables.Orders[0].OrderDate.Year() != 2024 || tables.Orders[0].OrderDate.Hour() != 10 {
		t.Errorf("unexpected order_date: %v", tables.Orders[0].OrderDate)
	}
	if tables.Orders[0].ProcessingDate == nil {
		t.Error("processing_date should be parsed when present")
	}
	if tables.Orders[1].ProcessingDate != nil {
		t.Error("empty processing_date should be nil")
	}

	// Category adjacency.
	if c, ok := tables.CategoryByID[2]; !ok || c.Name != "Phones" {
		t.Errorf("category adjacency lookup failed: %+v", c)
	}
}

func TestReadAllMissingColumn(t *testing.T) {
	files := validFixture()
	files["products.csv"] = "product_id,name,price,category_id\n1,Widget,10.00,1\n"
	dir := writeFixture(t, files)

	_, err := ReadAll(dir, zap.NewNop())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.File != "products.csv" {
		t.Errorf("unexpected file: %s", schemaErr.File)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "sku" {
		t.Errorf("unexpected missing columns: %v", schemaErr.Missing)
	}
}

func TestReadAllWarnsOnAbsentCostColumn(t *testing.T) {
	files := validFixture()
	// cost is optional, so the file parses, but every cost silently reads
	// as 0 and profit figures would be overstated. That deserves a warning.
	files["products.csv"] = "product_id,name,description,price,category_id,sku\n" +
		"1,Widget,,10.00,1,SKU-1\n"
	dir := writeFixture(t, files)

	core, logs := observer.New(zap.WarnLevel)
	tables, err := ReadAll(dir, zap.New(core))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if tables.Products[0].Cost != 0 {
		t.Errorf("cost = %v, want 0 when the column is absent", tables.Products[0].Cost)
	}
	if logs.FilterMessageSnippet("no cost column").Len() != 1 {
		t.Errorf("expected one warning about the absent cost column, got logs: %v", logs.All())
	}

	// With the column present, even if empty, no warning fires.
	files["products.csv"] = "product_id,name,description,price,cost,category_id,sku\n" +
		"1,Widget,,10.00,,1,SKU-1\n"
	dir = writeFixture(t, files)

	core, logs = observer.New(zap.WarnLevel)
	if _, err := ReadAll(dir, zap.New(core)); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if logs.FilterMessageSnippet("no cost column").Len() != 0 {
		t.Error("empty cost values must not trigger the absent-column warning")
	}
}

func TestReadAllNegativePrice(t *testing.T) {
	files := validFixture()
	files["products.csv"] = "product_id,name,description,price,cost,category_id,sku\n" +
		"1,Widget,,-5,4.00,1,SKU-1\n"
	dir := writeFixture(t, files)

	_, err := ReadAll(dir, zap.NewNop())
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected RuleError, got %v", err)
	}
	if ruleErr.Rule != "negative price" || ruleErr.Line != 2 {
		t.Errorf("unexpected rule error: %v", ruleErr)
	}
}

func TestReadAllNegativeOrderAmount(t *testing.T) {
	files := validFixture()
	files["orders.csv"] = "order_id,customer_id,order_date,status,payment_method,total_amount\n" +
		"1,1,2024-03-01,Delivered,card,-1\n"
	dir := writeFixture(t, files)

	_, err := ReadAll(dir, zap.NewNop())
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected RuleError, got %v", err)
	}
}

func TestReadAllNonPositiveQuantity(t *testing.T) {
	files := validFixture()
	files["order_items.csv"] = "order_item_id,order_id,product_id,quantity,price,total\n" +
		"1,1,1,0,10.00,0\n"
	dir := writeFixture(t, files)

	_, err := ReadAll(dir, zap.NewNop())
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected RuleError, got %v", err)
	}
	if ruleErr.Rule != "zero or negative quantity" {
		t.Errorf("unexpected rule: %s", ruleErr.Rule)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := writeFixture(t, validFixture())
	if err := CheckFiles(dir); err != nil {
		t.Errorf("CheckFiles on complete dir: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "orders.csv")); err != nil {
		t.Fatal(err)
	}
	if err := CheckFiles(dir); err == nil {
		t.Error("expected error when a required file is missing")
	}
}
