// internal/app/store/users/postgres.go
package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/stratahr/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
)

// DBTX is the subset of database/sql used by PostgresStore.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// pinger is implemented by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

// PostgresStore reads users straight from the directory's Postgres database.
type PostgresStore struct {
	db DBTX
}

// NewPostgres wraps an open database handle.
func NewPostgres(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pgx-backed *sql.DB for dsn. A non-empty password
// overrides whatever the DSN carries, so the secret can live apart from the
// address. The pool connects lazily; nothing is dialed here.
func OpenPostgres(dsn, password string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if password != "" {
		cfg.Password = password
	}
	return stdlib.OpenDB(*cfg), nil
}

// Rows are returned as JSON so every profile column comes through without
// the store knowing the table layout.
const findByEmailSQL = `SELECT row_to_json(u) FROM users u
		 WHERE u.email = $1
		 LIMIT 2`

// FindByEmail implements Directory.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	rows, err := s.db.QueryContext(ctx, findByEmailSQL, email)
	if err != nil {
		return nil, classifyPgError("find_by_email", err)
	}
	defer rows.Close()

	var found []models.UserRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec, err := models.DecodeUserRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("decode user row: %w", err)
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPgError("find_by_email", err)
	}

	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, &QueryError{Op: "find_by_email", Err: errMultipleRows}
	}
}

// Ping implements Directory.
func (s *PostgresStore) Ping(ctx context.Context) error {
	p, ok := s.db.(pinger)
	if !ok {
		return nil
	}
	return p.PingContext(ctx)
}

// classifyPgError turns server-side SQL errors into QueryErrors and wraps the
// rest (network, pool) as plain db errors.
func classifyPgError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{Op: op, Err: err}
	}
	return fmt.Errorf("db error: %w", err)
}
