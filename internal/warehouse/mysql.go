package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDriver struct {
	db *sql.DB
}

func (md *MySQLDriver) Connect(dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	md.db = db
	return nil
}

func (md *MySQLDriver) Close() error {
	return md.db.Close()
}

func (md *MySQLDriver) Reset(ctx context.Context, table, ddl string) error {
	if _, err := md.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return err
	}
	_, err := md.db.ExecContext(ctx, ddl)
	return err
}

func (md *MySQLDriver) Ensure(ctx context.Context, table, ddl string) error {
	_, err := md.db.ExecContext(ctx, ddl)
	return err
}

// mysqlMaxPlaceholders is the server-side prepared-statement parameter
// limit (a 16-bit count).
const mysqlMaxPlaceholders = 65535

func (md *MySQLDriver) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	var total int64
	for _, batch := range splitForInsert(columns, rows) {
		query, args := buildInsert(table, columns, batch)
		res, err := md.db.ExecContext(ctx, query, args...)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// splitForInsert bounds each statement to the placeholder limit, so a wide
// table stays loadable no matter how large the caller's chunk size is.
func splitForInsert(columns []string, rows [][]any) [][][]any {
	maxRows := mysqlMaxPlaceholders / len(columns)
	if maxRows < 1 {
		maxRows = 1
	}
	var batches [][][]any
	for begin := 0; begin < len(rows); begin += maxRows {
		end := begin + maxRows
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[begin:end])
	}
	return batches
}

// buildInsert renders a multi-row INSERT with ? placeholders, the flattened
// argument list alongside.
func buildInsert(table string, columns []string, rows [][]any) (string, []any) {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(placeholder)
		args = append(args, row...)
	}
	return b.String(), args
}
