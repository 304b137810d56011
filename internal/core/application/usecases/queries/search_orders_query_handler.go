package queries

import (
	"context"
	"iter"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// SearchOrdersQueryHandler retrieves orders matching a filter mapping.
// It delegates filter translation and query construction to the repository,
// which binds every filter value as a query parameter.
type SearchOrdersQueryHandler struct {
	orders ports.OrderRepository
	logger *slog.Logger
}

// NewSearchOrdersQueryHandler creates a handler for order searches.
func NewSearchOrdersQueryHandler(orders ports.OrderRepository, logger *slog.Logger) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{
		orders: orders,
		logger: logger.With("component", "search_orders_query_handler"),
	}
}

// Handle returns a lazy, finite, restartable sequence of matching orders,
// bounded by the query's limit starting at its offset. Each range over the
// sequence re-executes the underlying store query. Result ordering is
// implementation-defined but stable within a single query.
func (h SearchOrdersQueryHandler) Handle(
	ctx context.Context,
	query SearchOrdersQuery,
) (iter.Seq2[*order.Order, error], error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	h.logger.DebugContext(ctx, "Searching orders",
		"filters", len(query.Filters()), "limit", query.Limit(), "offset", query.Offset())

	return h.orders.Search(ctx, query.Filters(), query.Limit(), query.Offset()), nil
}
