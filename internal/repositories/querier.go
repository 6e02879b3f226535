package repositories

import "database/sql"

// Querier is satisfied by *sql.DB and *sql.Tx so allocation paths can
// run inside a transaction while simple reads stay on the pool.
type Querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}
