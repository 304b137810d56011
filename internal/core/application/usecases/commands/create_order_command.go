package commands

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order. The payload
// never carries an id, a total, or a creation timestamp: the store assigns the
// id and the domain derives the rest.
type CreateOrderCommand struct {
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. Every field rule
// is checked eagerly; the returned error aggregates one message per violated
// rule so callers can report all of them at once.
func NewCreateOrderCommand(details order.Details) (CreateOrderCommand, error) {
	if err := order.ValidateDetails(details); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Details returns the client-supplied order fields.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// Validate ensures the command was created via its constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
