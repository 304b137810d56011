// Package kafka publishes order notifications to a Kafka broker.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var ErrDisabled = errors.New("kafka disabled")

const EventOrderCreated = "order.created"

// Event is the wire envelope for order notifications.
type Event struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	OrderID   int64        `json:"order_id"`
	CreatedAt time.Time    `json:"created_at"`
	Order     orderPayload `json:"order"`
}

type orderPayload struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TelephoneNumber string `json:"telephoneNumber"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"deliveryAddress"`
	CustomerCount   int    `json:"customerCount"`
	OrderTotal      string `json:"orderTotal"`
	OrderDate       string `json:"orderDate"`
}

var _ ports.NotificationPublisher = (*Publisher)(nil)

// Publisher sends order events through a shared kafka writer. Messages are
// keyed by order id so events for the same order land on the same partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher connects a publisher to the brokers given as a comma-separated
// list. An empty list returns ErrDisabled so the caller can run without a
// broker.
func NewPublisher(brokersCSV string) (*Publisher, error) {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrDisabled
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, aggregate *order.Order) error {
	details := aggregate.Details()
	event := Event{
		EventID:   uuid.NewString(),
		Type:      EventOrderCreated,
		OrderID:   aggregate.ID(),
		CreatedAt: time.Now().UTC(),
		Order: orderPayload{
			ID:              aggregate.ID(),
			FirstName:       details.FirstName,
			LastName:        details.LastName,
			TelephoneNumber: details.TelephoneNumber,
			Email:           details.Email,
			DeliveryAddress: details.DeliveryAddress,
			CustomerCount:   details.CustomerCount,
			OrderTotal:      aggregate.OrderTotal().StringFixed(2),
			OrderDate:       aggregate.OrderDate().UTC().Format(time.RFC3339Nano),
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(aggregate.ID(), 10)),
		Value: data,
		Time:  event.CreatedAt,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
