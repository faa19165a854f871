// Package warehouse abstracts the bulk-write surface of the target
// warehouse. Drivers exist for Postgres, MySQL and MongoDB; the pipeline
// only ever resets tables and bulk-inserts rows, so the interface is kept
// to exactly that.
package warehouse

import "context"

type Driver interface {
	Connect(dsn string) error
	Close() error

	// Reset drops the table if it exists and recreates it from ddl.
	// Used for replace-mode (dimension) tables.
	Reset(ctx context.Context, table, ddl string) error

	// Ensure creates the table if it does not exist yet. Used for
	// append-mode (fact) tables.
	Ensure(ctx context.Context, table, ddl string) error

	// BulkInsert writes rows (aligned to the columns order) in one
	// round-trip and returns the number of rows inserted.
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}
