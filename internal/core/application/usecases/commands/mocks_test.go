package commands_test

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Search(
	ctx context.Context,
	filters map[string]string,
	limit, offset int,
) iter.Seq2[*order.Order, error] {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).(iter.Seq2[*order.Order, error])
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, topic string, o *order.Order) error {
	args := m.Called(ctx, topic, o)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validDetails() order.Details {
	return order.Details{
		FirstName:       "John",
		LastName:        "Doe",
		TelephoneNumber: "1234567890",
		Email:           "john.doe@example.com",
		DeliveryAddress: "123 Main St",
		CustomerCount:   10,
	}
}
