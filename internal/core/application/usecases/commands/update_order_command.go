package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to replace the mutable fields of an
// existing order with a full replacement payload.
type UpdateOrderCommand struct {
	orderID int64
	details order.Details

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order. The replacement
// details are validated with the same aggregated rules as creation, before any
// lookup or mutation happens.
func NewUpdateOrderCommand(orderID int64, details order.Details) (UpdateOrderCommand, error) {
	if orderID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := order.ValidateDetails(details); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Details returns the replacement order fields.
func (c UpdateOrderCommand) Details() order.Details {
	return c.details
}

// Validate ensures the command was created via its constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}
