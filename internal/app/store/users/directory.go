// internal/app/store/users/directory.go
package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratahr/internal/domain/models"
)

// Directory backends.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// ValidBackend reports whether name is a supported directory backend.
func ValidBackend(name string) bool {
	switch name {
	case BackendSupabase, BackendPostgres, BackendMongo:
		return true
	}
	return false
}

// Directory is the read-only view of the external user directory.
type Directory interface {
	// FindByEmail returns the unique record in the users table whose email
	// equals the given (already normalized) value.
	//
	// It returns ErrNotFound when no record matches and a *QueryError when
	// the directory answered but could not satisfy the query. Any other
	// error means the directory could not be reached or answered garbage.
	FindByEmail(ctx context.Context, email string) (models.UserRecord, error)

	// Ping checks that the directory is reachable.
	Ping(ctx context.Context) error
}

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// QueryError reports a failure the directory itself returned for a query
// (bad filter, permission denied, more than one row, ...).
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("directory query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// errMultipleRows is wrapped in a QueryError when the unique lookup matches
// more than one record.
var errMultipleRows = errors.New("multiple rows returned for unique lookup")

// IsQueryError reports whether err is (or wraps) a *QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
