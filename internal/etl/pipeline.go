// Package etl wires the pipeline phases together: extract, transform, load,
// plus the advisory quality report. Phases run strictly in sequence and any
// failure aborts the run; the warehouse connection is released on every
// exit path.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"warehouse-etl/internal/extract"
	"warehouse-etl/internal/load"
	"warehouse-etl/internal/quality"
	"warehouse-etl/internal/transform"
	"warehouse-etl/internal/warehouse"
)

type Pipeline struct {
	driver    warehouse.Driver
	dataDir   string
	chunkSize int
	logger    *zap.Logger
}

// New builds a pipeline around an already-connected warehouse driver. The
// pipeline takes ownership of the driver and closes it when Run returns.
func New(driver warehouse.Driver, dataDir string, chunkSize int, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		driver:    driver,
		dataDir:   dataDir,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// Run executes one full-refresh ETL run and returns the plain-text report.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	defer func() {
		if err := p.driver.Close(); err != nil {
			logger.Warn("closing warehouse connection", zap.Error(err))
		}
	}()

	logger.Info("starting etl pipeline", zap.String("data_dir", p.dataDir))

	// Extract.
	if err := extract.CheckFiles(p.dataDir); err != nil {
		logger.Error("extract phase failed", zap.Error(err))
		return "", err
	}
	tables, err := extract.ReadAll(p.dataDir, logger)
	if err != nil {
		logger.Error("extract phase failed", zap.Error(err))
		return "", err
	}
	logger.Info("data extraction completed",
		zap.Int("categories", len(tables.Categories)),
		zap.Int("products", len(tables.Products)),
		zap.Int("customers", len(tables.Customers)),
		zap.Int("orders", len(tables.Orders)),
		zap.Int("order_items", len(tables.OrderItems)))

	// Transform. The bindings are deliberate: the daily sales aggregation
	// and the time dimension read the raw snapshots, while customer
	// enrichment reads the revenue-enriched orders.
	rawOrders := tables.Orders
	rawItems := tables.OrderItems
	rawProducts := tables.Products

	enrichedProducts := transform.EnrichProducts(rawProducts, tables.Categories)
	ordersWithRevenue := transform.OrderRevenue(rawOrders, rawItems, rawProducts)
	enrichedCustomers := transform.EnrichCustomers(tables.Customers, ordersWithRevenue)
	dailySales := transform.DailySales(rawOrders, rawItems, rawProducts)
	timeDim := transform.TimeDimension(rawOrders)
	logger.Info("data transformation completed",
		zap.Int("daily_sales", len(dailySales)),
		zap.Int("time_dimension", len(timeDim)))

	// Quality metrics on the validated tables; advisory only.
	reports := []quality.TableReport{
		{Name: "categories", Metrics: quality.CheckCategories(tables.Categories)},
		{Name: "products", Metrics: quality.CheckProducts(tables.Products)},
		{Name: "customers", Metrics: quality.CheckCustomers(tables.Customers)},
		{Name: "orders", Metrics: quality.CheckOrders(tables.Orders, time.Now())},
		{Name: "order_items", Metrics: quality.CheckOrderItems(tables.OrderItems)},
	}

	// Load: dimensions replace, facts append.
	coordinator := load.NewCoordinator(p.driver, p.chunkSize, logger)
	dimensions := []load.Table{
		load.TimeDimensionTable(timeDim),
		load.CategoriesTable(tables.Categories),
		load.ProductsTable(enrichedProducts),
		load.CustomersTable(enrichedCustomers),
	}
	facts := []load.Table{
		load.OrdersTable(ordersWithRevenue),
		load.OrderItemsTable(tables.OrderItems),
		load.DailySalesTable(dailySales),
	}
	stats, err := coordinator.Load(ctx, dimensions, facts)
	if err != nil {
		logger.Error("load phase failed", zap.Error(err))
		return "", fmt.Errorf("load: %w", err)
	}

	end := time.Now()
	logger.Info("etl pipeline completed", zap.Duration("duration", end.Sub(start)))

	return quality.Render(runID, start, end, reports, stats), nil
}
