// Package store defines the persistence boundary for the console's own
// state. The identity provider owns users, roles and credentials; the only
// thing the console persists locally is its audit trail.
package store

import (
	"context"
	"errors"

	"github.com/openclave/realmadmin/internal/admin/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root persistence interface.
type Store interface {
	Audit() Audit

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Audit is the append-only audit trail of privileged console operations.
type Audit interface {
	Append(ctx context.Context, entry domain.AuditEntry) error

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
