package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"exampleapi/internal/repository"
)

// Package postgres implements the repository contracts with database/sql and
// parameterized queries over the pgx stdlib driver. It contains no business logic.

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	// Class 22 covers values Postgres cannot store: numeric out of range,
	// string too long, NUL in text, invalid datetime.
	pgDataExceptionClass = "22"
)

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapError translates constraint violations and rejected values into repository errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrInvalidReference, pgErr.ConstraintName)
	case pgErr.Code == pgUniqueViolation:
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	case strings.HasPrefix(pgErr.Code, pgDataExceptionClass):
		return fmt.Errorf("%w: %s (%s)", repository.ErrInvalidValue, pgErr.Message, pgErr.Code)
	default:
		return err
	}
}

// mapped runs a scan result through mapError.
func mapped[T any](item *T, err error) (*T, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// withTx runs fn in a transaction and commits if fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// listPage returns one page of table ordered by id, plus the total row count.
// table and columns are package constants, never caller input.
func listPage[T any](ctx context.Context, q querier, table, columns string, pq repository.PageQuery, scan func(scannable) (*T, error)) (*repository.PageResult[T], error) {
	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		"SELECT "+columns+" FROM "+table+" ORDER BY id LIMIT $1 OFFSET $2",
		pq.Limit, pq.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

// deleteByID removes row id from table and returns sql.ErrNoRows if there was none.
func deleteByID(ctx context.Context, q querier, table string, id int64) error {
	res, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
