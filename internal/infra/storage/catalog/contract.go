package catalog

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс для выполнения запросов; *sql.DB и *sql.Tx его реализуют
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
