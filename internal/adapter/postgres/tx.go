package postgres

import (
	"context"
	"time"

	"github.com/Temutjin2k/mileage-report/pkg/metrics"
	"github.com/Temutjin2k/mileage-report/pkg/trm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// TxorDB returns the transaction carried by ctx, or the pool when there is none.
func TxorDB(ctx context.Context, db *pgxpool.Pool) Querier {
	tx, ok := ctx.Value(trm.TxKey).(pgx.Tx)
	if !ok {
		return db
	}
	return tx
}

// track starts timing a query; call the result with the named error on return.
func track(service, operation string) func(err *error) {
	start := time.Now()
	return func(err *error) {
		metrics.RecordDatabaseQuery(service, operation, *err, time.Since(start))
	}
}
