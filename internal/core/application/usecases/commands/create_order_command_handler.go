package commands

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// DevEnvironment is the deployment environment in which downstream
// notifications are skipped: local brokers are for manual testing only.
const DevEnvironment = "dev"

// CreateOrderCommandHandler handles order placement: it stamps the creation
// time, derives the total, persists the order, and emits a creation event.
//
// Persistence happens-before publication, and publication is fire-and-forget:
// a publish failure is logged and swallowed, never surfaced to the caller and
// never rolled back. A crash between persist and publish leaves the order
// persisted without a notification; delivery is at-most-once.
type CreateOrderCommandHandler struct {
	orders      ports.OrderRepository
	publisher   ports.NotificationPublisher
	environment string
	topic       string
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// The environment gates publication: in DevEnvironment the event is skipped
// and logged instead of published.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	publisher ports.NotificationPublisher,
	environment string,
	topic string,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders:      orders,
		publisher:   publisher,
		environment: environment,
		topic:       topic,
		logger:      logger.With("component", "create_order_command_handler"),
	}
}

// Handle processes the order placement command and returns the persisted
// order, including its store-assigned id.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.New(cmd.Details(), time.Now())
	if err != nil {
		return nil, err
	}

	// A client disconnect must not tear down an in-flight write or publish.
	ctx = context.WithoutCancel(ctx)

	if err = h.orders.Add(ctx, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist order", "error", err)
		return nil, err
	}
	h.logger.InfoContext(ctx, "Order created", "order_id", aggregate.ID())

	h.notify(ctx, aggregate)

	return aggregate, nil
}

func (h CreateOrderCommandHandler) notify(ctx context.Context, aggregate *order.Order) {
	if h.environment == DevEnvironment {
		h.logger.InfoContext(ctx, "Notification skipped in dev environment, use stage environment for end-to-end delivery",
			"order_id", aggregate.ID())
		return
	}

	if err := h.publisher.Publish(ctx, h.topic, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order created event",
			"order_id", aggregate.ID(), "topic", h.topic, "error", err)
	}
}
