package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Row-to-struct conversion is data driven: destination structs carry db:"col"
// tags and pgx.RowToStructByNameLax does the mapping, so there is no
// per-entity generated scan code.

// One runs a query that must return exactly one row.
func One[T any](ctx context.Context, q Querier, sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, Wrap(err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, Wrap(err)
	}
	return v, nil
}

// Optional runs a query that returns zero or one row; nil means no row.
func Optional[T any](ctx context.Context, q Querier, sql string, args ...any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Wrap(err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, Wrap(err)
	}
	return &v, nil
}

// Many runs a query returning any number of rows.
func Many[T any](ctx context.Context, q Querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Wrap(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, Wrap(err)
	}
	return items, nil
}

// Count runs a single-value count query.
func Count(ctx context.Context, q Querier, sql string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, Wrap(err)
	}
	return n, nil
}

// Exec runs a statement and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, Wrap(err)
	}
	return tag.RowsAffected(), nil
}

// Postgres error codes the port translates into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Wrap translates storage failures into the domain error kinds. Unique and
// foreign key violations surface as their typed errors so the store-level
// constraints remain authoritative under concurrent writers; everything else
// is reported as a database error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", shared.ErrUniqueConstraint, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", shared.ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("database error: %w", err)
}
