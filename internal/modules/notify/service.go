package notify

import (
	"context"
	"fmt"

	"github.com/masapp/masapp-backend/internal/modules/qr"
)

// TokenGate validates that a QR token still authorizes table actions.
// Satisfied by the qr service.
type TokenGate interface {
	Ensure(ctx context.Context, token string) (*qr.Token, error)
}

// Service defines the staff notification mailbox business logic.
type Service interface {
	// RequestBill posts a cashier notification on behalf of a table. The
	// table identity comes from the verified token, not the request body.
	RequestBill(ctx context.Context, req BillRequest) (*Notification, error)

	// Post adds a notification directly. Used by other modules (payment
	// completion, table transfer) rather than HTTP clients.
	Post(ctx context.Context, n Notification) (*Notification, error)

	// Pending lists un-acked notifications for a restaurant channel.
	Pending(ctx context.Context, restaurantID string, channel Channel) ([]*Notification, error)

	// Ack marks a notification delivered.
	Ack(ctx context.Context, restaurantID, id string) error
}

type service struct {
	store *Store
	gate  TokenGate
}

// NewService creates a new notify service.
func NewService(store *Store, gate TokenGate) Service {
	return &service{store: store, gate: gate}
}

func (s *service) RequestBill(ctx context.Context, req BillRequest) (*Notification, error) {
	if req.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	tok, err := s.gate.Ensure(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("cannot request bill: %w", err)
	}
	return s.store.Add(Notification{
		RestaurantID: tok.RestaurantID.String(),
		TableNumber:  tok.TableNumber,
		Channel:      ChannelCashier,
		Kind:         KindBillRequest,
		Message:      fmt.Sprintf("Table %d requested the bill", tok.TableNumber),
	}), nil
}

func (s *service) Post(ctx context.Context, n Notification) (*Notification, error) {
	if n.RestaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	if !validChannel(n.Channel) {
		return nil, fmt.Errorf("invalid channel %q", n.Channel)
	}
	return s.store.Add(n), nil
}

func (s *service) Pending(ctx context.Context, restaurantID string, channel Channel) ([]*Notification, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	if !validChannel(channel) {
		return nil, fmt.Errorf("invalid channel %q", channel)
	}
	return s.store.Pending(restaurantID, channel), nil
}

func (s *service) Ack(ctx context.Context, restaurantID, id string) error {
	if !s.store.Ack(restaurantID, id) {
		return fmt.Errorf("notification not found")
	}
	return nil
}
