package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// NotificationPublisher is the downstream event emission contract. Publication
// is best-effort: the application persists first, publishes after, and never
// rolls back a persisted order because a publish failed.
type NotificationPublisher interface {
	// Publish emits a creation event for the persisted order to the given
	// topic. Implementations must not retry on behalf of the caller; delivery
	// is at-most-once.
	Publish(ctx context.Context, topic string, aggregate *order.Order) error
}
