package storage

import (
	"context"

	"anonid/internal/identity"
)

// Stores are interface-driven to keep the domain logic testable and to allow
// swapping in-memory, PostgreSQL, or cached persistence without rewiring
// business code.
//
// Contract: records are written once per NIN and never mutated in place.
// Create must reject a duplicate NIN with sentinel.ErrConflict so concurrent
// registrations for the same NIN resolve to exactly one stored record; the
// registrar relies on this for its idempotency guarantee.
type IdentityStore interface {
	Create(ctx context.Context, record identity.Record) error
	FindByNIN(ctx context.Context, nin string) (identity.Record, error)
	FindByAnonID(ctx context.Context, anonID string) (identity.Record, error)
	Count(ctx context.Context) (int64, error)
}
