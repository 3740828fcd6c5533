// Package ports defines the contracts between the application core and the
// infrastructure adapters: the persistence gateway, the unit of work, and the
// event publisher. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"
)

// ErrUniquenessViolation signals that a storage-level uniqueness constraint
// rejected a write. The storage layer is the actual arbiter of external-id
// uniqueness: the workflow's read-before-write check is an optimization that
// can miss a concurrent insert, so adapters translate their driver's
// duplicate-key error into this sentinel and the workflow converts it into
// the duplicate conflict result.
var ErrUniquenessViolation = errors.New("uniqueness constraint violation")

// OrderRepository is the persistence gateway for order aggregates.
//
// Every read loads the aggregate complete with its line items, never
// partially, so the derived-total and fingerprint invariants stay checkable.
// Absence is an explicit (nil, nil) result, never an error.
//
// Add and Update stage changes; durability is only guaranteed once the
// enclosing unit of work commits.
type OrderRepository interface {
	// Add stages a new order aggregate and its line items for insertion.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stages changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its business identifier.
	// Returns (nil, nil) if no such order is stored.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByExternalID retrieves the order carrying the given external
	// correlation id. Returns (nil, nil) if none exists. Used for hard
	// duplicate detection before any write.
	GetByExternalID(ctx context.Context, externalID string) (*order.Order, error)

	// GetByFingerprint retrieves an order sharing the given content
	// fingerprint. Returns (nil, nil) if none exists. Used for soft
	// duplicate detection before the transaction opens.
	GetByFingerprint(ctx context.Context, fingerprint order.Fingerprint) (*order.Order, error)

	// GetAll retrieves every stored order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInReceivedStatus retrieves orders still in Received status.
	// Used by the stalled-order sweep to find registrations whose workflow
	// never reached a terminal status.
	GetAllInReceivedStatus(ctx context.Context) ([]*order.Order, error)
}
