package notify

import (
	"context"
	"fmt"

	"github.com/masapp/masapp-backend/internal/modules/events"
)

// EventBridge turns published order events into mailbox entries, so panels
// that were offline when an event fired still find it on their next poll.
// It sits in the publisher fan-out next to the SSE hub.
type EventBridge struct{ svc Service }

func NewEventBridge(svc Service) *EventBridge { return &EventBridge{svc: svc} }

func (b *EventBridge) Publish(ctx context.Context, evt events.Event) error {
	switch evt.Type {
	case events.EventNewOrder:
		_, err := b.svc.Post(ctx, Notification{
			RestaurantID: evt.RestaurantID,
			TableNumber:  evt.TableNumber,
			Channel:      ChannelKitchen,
			Kind:         KindNewOrder,
			Message:      fmt.Sprintf("New order from table %d", evt.TableNumber),
		})
		return err
	case events.EventPaymentCompleted:
		_, err := b.svc.Post(ctx, Notification{
			RestaurantID: evt.RestaurantID,
			TableNumber:  evt.TableNumber,
			Channel:      ChannelCashier,
			Kind:         KindPaymentCompleted,
			Message:      fmt.Sprintf("Table %d paid %.2f", evt.TableNumber, evt.TotalAmount),
		})
		return err
	}
	// status changes reach the panels over SSE only
	return nil
}
