// Package load persists the derived tables to the warehouse in two ordered
// phases: dimensions (replace) first, then facts (append). Writes are
// chunked to bound per-statement payload size; the first failure aborts the
// remaining writes.
package load

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"

	"warehouse-etl/internal/warehouse"
)

// Table is one warehouse table ready for loading: rows aligned to the
// Columns order, DDL for (re)creation.
type Table struct {
	Name    string
	DDL     string
	Columns []string
	Rows    [][]any
}

// Stats reports what a load run wrote and how fast the chunk writes were.
type Stats struct {
	RowCounts  map[string]int64
	Chunks     int64
	Duration   time.Duration
	AvgLatency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration
}

type Coordinator struct {
	driver    warehouse.Driver
	chunkSize int
	logger    *zap.Logger
}

func NewCoordinator(driver warehouse.Driver, chunkSize int, logger *zap.Logger) *Coordinator {
	if chunkSize <= 0 {
		chunkSize = 10000
	}
	return &Coordinator{driver: driver, chunkSize: chunkSize, logger: logger}
}

// Load writes the dimension tables (drop & recreate) and then the fact
// tables (append). Any write failure aborts the rest of the run.
func (c *Coordinator) Load(ctx context.Context, dimensions, facts []Table) (*Stats, error) {
	stats := &Stats{RowCounts: make(map[string]int64)}
	// Chunk latencies in microseconds, up to 1000s.
	histogram := hdrhistogram.New(1, 1000000000, 3)
	start := time.Now()

	c.logger.Info("loading dimension tables")
	for _, t := range dimensions {
		if err := c.driver.Reset(ctx, t.Name, t.DDL); err != nil {
			return stats, fmt.Errorf("reset %s: %w", t.Name, err)
		}
		if err := c.loadTable(ctx, t, stats, histogram); err != nil {
			return stats, err
		}
	}

	c.logger.Info("loading fact tables")
	for _, t := range facts {
		if err := c.driver.Ensure(ctx, t.Name, t.DDL); err != nil {
			return stats, fmt.Errorf("ensure %s: %w", t.Name, err)
		}
		if err := c.loadTable(ctx, t, stats, histogram); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	if histogram.TotalCount() > 0 {
		stats.AvgLatency = time.Duration(histogram.Mean()) * time.Microsecond
		stats.P95Latency = time.Duration(histogram.ValueAtQuantile(95)) * time.Microsecond
		stats.P99Latency = time.Duration(histogram.ValueAtQuantile(99)) * time.Microsecond
	}
	return stats, nil
}

func (c *Coordinator) loadTable(ctx context.Context, t Table, stats *Stats, histogram *hdrhistogram.Histogram) error {
	var total int64
	for begin := 0; begin < len(t.Rows); begin += c.chunkSize {
		end := begin + c.chunkSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}

		chunkStart := time.Now()
		n, err := c.driver.BulkInsert(ctx, t.Name, t.Columns, t.Rows[begin:end])
		if err != nil {
			return fmt.Errorf("bulk insert into %s: %w", t.Name, err)
		}
		recordLatency(histogram, time.Since(chunkStart).Microseconds())

		total += n
		stats.Chunks++
	}

	stats.RowCounts[t.Name] = total
	c.logger.Info("table loaded",
		zap.String("table", t.Name),
		zap.Int64("rows", total))
	return nil
}

// recordLatency records a chunk latency, clamping values beyond the
// histogram's trackable range so slow outliers still count in the stats.
func recordLatency(h *hdrhistogram.Histogram, micros int64) {
	if err := h.RecordValue(micros); err != nil {
		_ = h.RecordValue(h.HighestTrackableValue())
	}
}
