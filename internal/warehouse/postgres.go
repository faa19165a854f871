package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type PostgresDriver struct {
	conn *pgx.Conn
}

func (pd *PostgresDriver) Connect(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	pd.conn = conn
	return nil
}

func (pd *PostgresDriver) Close() error {
	return pd.conn.Close(context.Background())
}

func (pd *PostgresDriver) Reset(ctx context.Context, table, ddl string) error {
	if _, err := pd.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
		return err
	}
	_, err := pd.conn.Exec(ctx, ddl)
	return err
}

func (pd *PostgresDriver) Ensure(ctx context.Context, table, ddl string) error {
	_, err := pd.conn.Exec(ctx, ddl)
	return err
}

func (pd *PostgresDriver) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return pd.conn.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}
