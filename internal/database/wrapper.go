// Package database contains the Postgres store: generated queries, the
// transactional wrapper and schema bootstrapping.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matt-dz/foodgram/internal/sql"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

var (
	ErrUniqueViolation = errors.New("unique constraint violated")
	ErrCheckViolation  = errors.New("check constraint violated")
)

type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the set of operations the domain packages depend on.
type Store interface {
	Querier

	// ExecTx runs fn inside a single transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

type Database struct {
	*Queries

	Pool Pool
}

var _ Store = (*Database)(nil)

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{
		Queries: New(pool),
		Pool:    pool,
	}
}

// Close releases the connection pool.
func (d *Database) Close() {
	if c, ok := d.Pool.(interface{ Close() }); ok {
		c.Close()
	}
}

func (d *Database) ExecTx(ctx context.Context, fn func(Querier) error) (err error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(d.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// EnsureSchema ensures the database schema is applied to the
// Postgres database. The schema is applied to the database
// if the schema is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := d.db.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}

// TranslateError maps constraint violations reported by Postgres onto
// ErrUniqueViolation and ErrCheckViolation. The driver error stays in
// the chain so callers can still inspect the constraint name.
func TranslateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %s: %w", ErrUniqueViolation, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: %s: %w", ErrCheckViolation, pgErr.ConstraintName, err)
	}
	return err
}

// ConstraintName returns the name of the violated constraint, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// NullableID converts an id where zero means absent, such as an
// anonymous viewer, into a nullable query parameter.
func NullableID(id int64) pgtype.Int8 {
	return pgtype.Int8{Int64: id, Valid: id != 0}
}
