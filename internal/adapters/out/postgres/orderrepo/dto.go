// Package orderrepo provides the GORM-backed persistence adapter for the
// order aggregate: DTO mapping, point reads and writes, and the filtered,
// parameterized search listing.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the database representation of an order. The id is a
// store-assigned bigserial; the total is kept as numeric so the derived
// decimal value round-trips without floating drift.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	FirstName       string          `gorm:"not null"`
	LastName        string          `gorm:"not null"`
	TelephoneNumber string          `gorm:"not null"`
	Email           string          `gorm:"not null"`
	DeliveryAddress string          `gorm:"not null"`
	CustomerCount   int             `gorm:"not null"`
	OrderTotal      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	OrderDate       time.Time       `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	details := aggregate.Details()

	return OrderDTO{
		ID:              aggregate.ID(),
		FirstName:       details.FirstName,
		LastName:        details.LastName,
		TelephoneNumber: details.TelephoneNumber,
		Email:           details.Email,
		DeliveryAddress: details.DeliveryAddress,
		CustomerCount:   details.CustomerCount,
		OrderTotal:      aggregate.OrderTotal(),
		OrderDate:       aggregate.OrderDate(),
	}
}

// toDomain converts a database row to an order aggregate. The store owns the
// durable copy, so field rules are not re-validated on the way out.
func toDomain(dto OrderDTO) *order.Order {
	return order.Restore(dto.ID, order.Details{
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		TelephoneNumber: dto.TelephoneNumber,
		Email:           dto.Email,
		DeliveryAddress: dto.DeliveryAddress,
		CustomerCount:   dto.CustomerCount,
	}, dto.OrderTotal, dto.OrderDate)
}
