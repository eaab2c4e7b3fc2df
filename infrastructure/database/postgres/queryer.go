package postgres

import (
	"context"
	"database/sql"
)

// Queryer é satisfeito tanto por *sqlx.DB quanto por *sqlx.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
