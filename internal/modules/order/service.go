package order

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masapp/masapp-backend/internal/modules/events"
	"github.com/masapp/masapp-backend/internal/modules/menu"
	"github.com/masapp/masapp-backend/internal/modules/qr"
)

// Pricer resolves an item's currently effective price so orders snapshot it.
// Satisfied by the menu service.
type Pricer interface {
	PriceFor(ctx context.Context, itemID string) (*menu.MenuItem, float64, error)
}

// TokenGate validates that a QR token still authorizes ordering. Satisfied by
// the qr service.
type TokenGate interface {
	Ensure(ctx context.Context, token string) (*qr.Token, error)
}

// FanoutResult reports the outcome of one member order inside a grouped
// update. Fan-outs have no all-or-nothing guarantee; callers see exactly
// which members changed.
type FanoutResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  Status    `json:"status,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Service defines the order management business logic.
type Service interface {
	// Place validates the cart through the QR gate and the menu, snapshots
	// effective prices, persists the order atomically and announces it.
	Place(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// Get retrieves a full order by UUID.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter.
	List(ctx context.Context, f Filter) ([]*Order, error)

	// ListGrouped returns a restaurant's active orders merged per table for
	// the kitchen view.
	ListGrouped(ctx context.Context, restaurantID string) ([]*GroupedOrder, error)

	// UpdateStatus advances one order through the acting role's lens.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// UpdateTableStatus fans a transition out to every active order at a
	// table, one update per underlying record. Partial failure is reported
	// per order, not rolled back.
	UpdateTableStatus(ctx context.Context, restaurantID string, tableNumber int, req UpdateStatusRequest) ([]FanoutResult, error)

	// ChangeTable moves an order to another table in place.
	ChangeTable(ctx context.Context, id string, req ChangeTableRequest) (*Order, error)

	// Delete hard-removes an order. Kitchen-only, distinct from cancel.
	Delete(ctx context.Context, id string) error

	// DeleteByTable hard-removes every active order for a table (grouped
	// card deletion).
	DeleteByTable(ctx context.Context, restaurantID string, tableNumber int) (int, error)

	// MarkPaid settles an order: records the payment method, moves it to
	// paid and announces the change. Used by the payment module once the
	// remaining balance reaches zero.
	MarkPaid(ctx context.Context, id string, method string) (*Order, error)
}

type service struct {
	repo      Repository
	pricer    Pricer
	gate      TokenGate
	publisher events.Publisher
}

// NewService creates a new order service.
func NewService(repo Repository, pricer Pricer, gate TokenGate, publisher events.Publisher) Service {
	return &service{repo: repo, pricer: pricer, gate: gate, publisher: publisher}
}

func (s *service) Place(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.RestaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	rid, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant_id: %w", err)
	}

	tableNumber := req.TableNumber

	// Customer checkouts carry the QR token of their dining session. The
	// token must still be active, and its table number is authoritative over
	// whatever the client sent.
	if req.Token != "" {
		tok, err := s.gate.Ensure(ctx, req.Token)
		if err != nil {
			return nil, fmt.Errorf("ordering not allowed: %w", err)
		}
		if tok.RestaurantID != rid {
			return nil, fmt.Errorf("ordering not allowed: token belongs to another restaurant")
		}
		tableNumber = tok.TableNumber
	}
	if tableNumber <= 0 {
		return nil, fmt.Errorf("table_number must be > 0")
	}

	var items []*OrderItem
	var total float64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for item %s", line.MenuItemID)
		}
		menuItem, price, err := s.pricer.PriceFor(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("item %q is currently unavailable", menuItem.Name)
		}
		total += price * float64(line.Quantity)
		items = append(items, &OrderItem{
			ID:             uuid.New(),
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			Price:          price,
			Quantity:       line.Quantity,
			Notes:          line.Notes,
			KitchenStation: menuItem.KitchenStation,
		})
	}

	o := &Order{
		ID:           uuid.New(),
		RestaurantID: rid,
		TableNumber:  tableNumber,
		Status:       StatusPending,
		TotalAmount:  round2(total),
		Notes:        req.Notes,
		Items:        items,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.publish(ctx, events.EventNewOrder, o)
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]*Order, error) {
	return s.repo.List(ctx, f)
}

func (s *service) ListGrouped(ctx context.Context, restaurantID string) ([]*GroupedOrder, error) {
	orders, err := s.repo.List(ctx, Filter{RestaurantID: restaurantID})
	if err != nil {
		return nil, err
	}
	active := orders[:0]
	for _, o := range orders {
		if !IsTerminal(o.Status) {
			active = append(active, o)
		}
	}
	return GroupByTable(active), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	role := Role(strings.ToLower(req.Role))
	next := Status(strings.ToLower(req.Status))
	if !CanTransition(role, o.Status, next) {
		return nil, fmt.Errorf("role %s cannot transition order from %s to %s", role, o.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = time.Now()

	s.publish(ctx, events.EventOrderStatusChanged, o)
	return o, nil
}

func (s *service) UpdateTableStatus(ctx context.Context, restaurantID string, tableNumber int, req UpdateStatusRequest) ([]FanoutResult, error) {
	orders, err := s.repo.List(ctx, Filter{RestaurantID: restaurantID, TableNumber: &tableNumber})
	if err != nil {
		return nil, err
	}

	var results []FanoutResult
	for _, o := range orders {
		if IsTerminal(o.Status) {
			continue
		}
		updated, err := s.UpdateStatus(ctx, o.ID.String(), req)
		if err != nil {
			results = append(results, FanoutResult{OrderID: o.ID, Error: err.Error()})
			continue
		}
		results = append(results, FanoutResult{OrderID: o.ID, Status: updated.Status})
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no active orders for table %d", tableNumber)
	}
	return results, nil
}

func (s *service) ChangeTable(ctx context.Context, id string, req ChangeTableRequest) (*Order, error) {
	if req.TableNumber <= 0 {
		return nil, fmt.Errorf("table_number must be > 0")
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if IsTerminal(o.Status) {
		return nil, fmt.Errorf("cannot move a %s order", o.Status)
	}
	if err := s.repo.UpdateTable(ctx, id, req.TableNumber); err != nil {
		return nil, err
	}
	o.TableNumber = req.TableNumber
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteByTable(ctx context.Context, restaurantID string, tableNumber int) (int, error) {
	return s.repo.DeleteByTable(ctx, restaurantID, tableNumber)
}

func (s *service) MarkPaid(ctx context.Context, id string, method string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if o.Status == StatusPaid {
		return o, nil
	}
	if o.Status == StatusCancelled {
		return nil, fmt.Errorf("cannot settle a cancelled order")
	}
	if err := s.repo.MarkPaid(ctx, id, method); err != nil {
		return nil, err
	}
	o.Status = StatusPaid
	o.PaymentMethod = method

	s.publish(ctx, events.EventOrderStatusChanged, o)
	return o, nil
}

func (s *service) publish(ctx context.Context, eventType string, o *Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.Event{
		Type:         eventType,
		RestaurantID: o.RestaurantID.String(),
		OrderID:      o.ID.String(),
		TableNumber:  o.TableNumber,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		log.Printf("order: publish %s: %v", eventType, err)
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
