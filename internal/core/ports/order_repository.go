package ports

import (
	"context"
	"iter"

	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the only boundary through which the application reads or writes
// durable order state.
type OrderRepository interface {
	// Add persists a new order and assigns its store-generated identifier to
	// the aggregate. The order must be valid and not yet have an id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Returns an
	// errs.ObjectNotFoundError when no row matches the order's id.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier. Returns an
	// errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Search returns the orders matching every non-empty filter entry as a
	// case-sensitive substring of the named field, bounded by limit starting
	// at offset. Filter keys use client-facing camelCase field names. The
	// returned sequence is lazy and restartable: each range re-executes the
	// query. Failures are yielded through the sequence's error value. Result
	// ordering is implementation-defined but stable within a single query.
	Search(ctx context.Context, filters map[string]string, limit, offset int) iter.Seq2[*order.Order, error]
}
