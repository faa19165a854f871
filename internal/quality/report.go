package quality

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"warehouse-etl/internal/load"
)

// TableReport pairs a table name with its metrics; the order of the slice
// is the order tables appear in the report.
type TableReport struct {
	Name    string
	Metrics Metrics
}

// Render produces the plain-text run report: timings, per-table record
// counts, quality metrics and (when the load ran) write statistics.
func Render(runID string, start, end time.Time, tables []TableReport, stats *load.Stats) string {
	var b strings.Builder

	b.WriteString("ETL Pipeline Report\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Run ID: %s\n", runID)
	fmt.Fprintf(&b, "Start Time: %s\n", start.Format(time.RFC3339))
	fmt.Fprintf(&b, "End Time: %s\n", end.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %s\n", end.Sub(start).Truncate(time.Millisecond))

	b.WriteString("\nRecords Processed:\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "- %s: %d\n", t.Name, t.Metrics.TotalRecords)
	}

	b.WriteString("\nData Quality Metrics:\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "\n%s:\n", t.Name)
		fmt.Fprintf(&b, "  Total Records: %d\n", t.Metrics.TotalRecords)
		fmt.Fprintf(&b, "  Invalid Records: %d\n", t.Metrics.InvalidRecords)
		writeCounts(&b, "  Missing Values:", t.Metrics.MissingValues)
		if len(t.Metrics.ValidationErrors) > 0 {
			b.WriteString("  Validation Errors:\n")
			for _, e := range t.Metrics.ValidationErrors {
				fmt.Fprintf(&b, "    - %s\n", e)
			}
		}
		writeCounts(&b, "  Business Rule Violations:", t.Metrics.BusinessRuleViolations)
	}

	if stats != nil {
		b.WriteString("\nWarehouse Load:\n")
		names := make([]string, 0, len(stats.RowCounts))
		for name := range stats.RowCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %d rows\n", name, stats.RowCounts[name])
		}
		fmt.Fprintf(&b, "Chunks: %d\n", stats.Chunks)
		fmt.Fprintf(&b, "Load Duration: %s\n", stats.Duration.Truncate(time.Millisecond))
		fmt.Fprintf(&b, "Chunk Latency: avg=%s p95=%s p99=%s\n",
			stats.AvgLatency.Truncate(time.Microsecond),
			stats.P95Latency.Truncate(time.Microsecond),
			stats.P99Latency.Truncate(time.Microsecond))
	}

	return b.String()
}

func writeCounts(b *strings.Builder, header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString(header + "\n")
	for _, k := range keys {
		fmt.Fprintf(b, "    - %s: %d\n", k, counts[k])
	}
}
