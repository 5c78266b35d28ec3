package events

import (
	"context"
	"time"
)

// Event types emitted by the order and payment modules.
const (
	EventNewOrder           = "new_order"
	EventOrderStatusChanged = "order_status_changed"
	EventPaymentCompleted   = "payment_completed"
)

// OrdersTopic is the NATS subject order lifecycle events are published to.
const OrdersTopic = "orders.events"

// Event is one order lifecycle occurrence pushed to SSE subscribers and,
// when configured, to NATS.
type Event struct {
	Type         string    `json:"event_type"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      string    `json:"order_id,omitempty"`
	TableNumber  int       `json:"table_number,omitempty"`
	Status       string    `json:"status,omitempty"`
	TotalAmount  float64   `json:"total_amount,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// MultiPublisher fans one event out to several publishers. A failing sink
// does not stop delivery to the others; the first error is returned.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, evt Event) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}
