package testutil

import (
	"context"
	"sync"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/domain/models"
)

// StubDirectory is an in-memory userstore.Directory for handler tests.
type StubDirectory struct {
	mu      sync.Mutex
	users   map[string]models.UserRecord
	findErr error
	pingErr error
	lookups []string
}

// NewStubDirectory returns a directory holding the given records, keyed by
// their email field.
func NewStubDirectory(records ...models.UserRecord) *StubDirectory {
	d := &StubDirectory{users: make(map[string]models.UserRecord)}
	for _, r := range records {
		d.users[r.Email()] = r
	}
	return d
}

// FailFind makes every FindByEmail return err.
func (d *StubDirectory) FailFind(err error) *StubDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findErr = err
	return d
}

// FailPing makes every Ping return err.
func (d *StubDirectory) FailPing(err error) *StubDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pingErr = err
	return d
}

// Lookups returns the emails that were looked up, in order.
func (d *StubDirectory) Lookups() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lookups...)
}

// FindByEmail implements userstore.Directory. Returned records are copies.
func (d *StubDirectory) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups = append(d.lookups, email)
	if d.findErr != nil {
		return nil, d.findErr
	}
	rec, ok := d.users[email]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	out := make(models.UserRecord, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out, nil
}

// Ping implements userstore.Directory.
func (d *StubDirectory) Ping(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pingErr
}
