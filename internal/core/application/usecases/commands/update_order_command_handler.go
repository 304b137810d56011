package commands

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// UpdateOrderCommandHandler handles order updates within the mutability
// window. The staleness check is evaluated against the record read in the
// same call; concurrent updates to the same id are not serialized and last
// write wins at the store.
type UpdateOrderCommandHandler struct {
	orders ports.OrderRepository
	logger *slog.Logger
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
func NewUpdateOrderCommandHandler(orders ports.OrderRepository, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		orders: orders,
		logger: logger.With("component", "update_order_command_handler"),
	}
}

// Handle looks up the order, applies the replacement fields if the mutability
// window has not elapsed, persists the merged record, and returns it.
// An unknown id surfaces as an errs.ObjectNotFoundError; an elapsed window as
// order.ErrUpdateWindowElapsed. The id and creation timestamp never change.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = existing.UpdateDetails(cmd.Details(), time.Now()); err != nil {
		return nil, err
	}

	// Finish the write even if the caller has gone away.
	if err = h.orders.Update(context.WithoutCancel(ctx), existing); err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist order update", "order_id", cmd.OrderID(), "error", err)
		return nil, err
	}
	h.logger.InfoContext(ctx, "Order updated", "order_id", cmd.OrderID())

	return existing, nil
}
