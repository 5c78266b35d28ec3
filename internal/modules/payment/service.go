package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masapp/masapp-backend/internal/modules/events"
	"github.com/masapp/masapp-backend/internal/modules/order"
)

// centEpsilon absorbs float rounding when comparing money amounts.
const centEpsilon = 0.005

// Orders is the slice of the order service the cashier needs. Satisfied by
// the order service.
type Orders interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	MarkPaid(ctx context.Context, id string, method string) (*order.Order, error)
}

// TokenDeactivator ends a table's QR dining session once payment completes.
// Satisfied by the qr service.
type TokenDeactivator interface {
	DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error
}

// Service defines the cashier payment business logic.
type Service interface {
	// Status returns the order's balance sheet: total, paid, remaining and
	// the recorded installments.
	Status(ctx context.Context, orderID string) (*StatusView, error)

	// Record registers an installment. Amount zero means the whole remaining
	// balance (or, with items, their subtotal); an amount above the remaining
	// balance is rejected. Item subsets are checked against the order's
	// lines and their unpaid quantities. When the balance reaches zero the
	// order is marked paid and the table's QR tokens are deactivated.
	Record(ctx context.Context, orderID string, req RecordRequest) (*StatusView, error)

	// Complete finalizes a split flow. Rejected while the remaining balance
	// is above zero.
	Complete(ctx context.Context, orderID string) (*StatusView, error)
}

type service struct {
	repo      Repository
	orders    Orders
	tokens    TokenDeactivator
	publisher events.Publisher
}

// NewService creates a new payment service.
func NewService(repo Repository, orders Orders, tokens TokenDeactivator, publisher events.Publisher) Service {
	return &service{repo: repo, orders: orders, tokens: tokens, publisher: publisher}
}

func (s *service) Status(ctx context.Context, orderID string) (*StatusView, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return s.statusFor(ctx, o)
}

func (s *service) Record(ctx context.Context, orderID string, req RecordRequest) (*StatusView, error) {
	method := Method(strings.ToLower(req.Method))
	if method != MethodCash && method != MethodCard {
		return nil, fmt.Errorf("invalid payment method %q", req.Method)
	}

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if o.Status == order.StatusCancelled {
		return nil, fmt.Errorf("cannot settle a cancelled order")
	}

	view, err := s.statusFor(ctx, o)
	if err != nil {
		return nil, err
	}
	if view.IsSettled {
		return nil, fmt.Errorf("order is already settled")
	}

	amount := req.Amount
	if len(req.Items) > 0 {
		covered, err := coveredAmount(o, view.Payments, req.Items)
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			amount = covered
		} else if amount-covered > centEpsilon || covered-amount > centEpsilon {
			return nil, fmt.Errorf("amount %.2f must be the covered items total %.2f", amount, covered)
		}
	} else if amount == 0 {
		amount = view.Remaining // single-payment flow
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}
	if amount > view.Remaining+centEpsilon {
		return nil, fmt.Errorf("amount %.2f exceeds remaining balance %.2f", amount, view.Remaining)
	}

	rec := &Record{
		ID:      uuid.New(),
		OrderID: o.ID,
		Method:  method,
		Amount:  round2(amount),
		Items:   req.Items,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	view.Payments = append(view.Payments, rec)
	view.Paid = round2(view.Paid + rec.Amount)
	view.Remaining = round2(o.TotalAmount - view.Paid)
	if view.Remaining <= centEpsilon {
		view.Remaining = 0
		view.IsSettled = true
		if err := s.settle(ctx, o, method); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *service) Complete(ctx context.Context, orderID string) (*StatusView, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	view, err := s.statusFor(ctx, o)
	if err != nil {
		return nil, err
	}
	if view.Remaining > 0 {
		return nil, fmt.Errorf("cannot complete payment: %.2f still remaining", view.Remaining)
	}
	if o.Status != order.StatusPaid {
		method := MethodCash
		if len(view.Payments) > 0 {
			method = view.Payments[len(view.Payments)-1].Method
		}
		if err := s.settle(ctx, o, method); err != nil {
			return nil, err
		}
	}
	view.IsSettled = true
	return view, nil
}

// settle marks the order paid, ends the table's QR session and announces the
// completed payment.
func (s *service) settle(ctx context.Context, o *order.Order, method Method) error {
	if _, err := s.orders.MarkPaid(ctx, o.ID.String(), string(method)); err != nil {
		return err
	}
	if s.tokens != nil {
		if err := s.tokens.DeactivateForTable(ctx, o.RestaurantID.String(), o.TableNumber); err != nil {
			log.Printf("payment: deactivate tokens for table %d: %v", o.TableNumber, err)
		}
	}
	if s.publisher != nil {
		err := s.publisher.Publish(ctx, events.Event{
			Type:         events.EventPaymentCompleted,
			RestaurantID: o.RestaurantID.String(),
			OrderID:      o.ID.String(),
			TableNumber:  o.TableNumber,
			TotalAmount:  o.TotalAmount,
			OccurredAt:   time.Now(),
		})
		if err != nil {
			log.Printf("payment: publish payment_completed: %v", err)
		}
	}
	return nil
}

// coveredAmount checks an installment's item subset against the order's
// actual lines and returns the subtotal it covers. Quantities already
// covered by earlier installments cannot be covered again.
func coveredAmount(o *order.Order, prior []*Record, items []PaidItem) (float64, error) {
	byID := make(map[uuid.UUID]*order.OrderItem, len(o.Items))
	for _, it := range o.Items {
		byID[it.ID] = it
	}
	paidQty := make(map[uuid.UUID]int)
	for _, rec := range prior {
		for _, pi := range rec.Items {
			paidQty[pi.OrderItemID] += pi.Quantity
		}
	}

	var total float64
	for _, pi := range items {
		it, ok := byID[pi.OrderItemID]
		if !ok {
			return 0, fmt.Errorf("invalid item %s: not part of this order", pi.OrderItemID)
		}
		if pi.Quantity <= 0 {
			return 0, fmt.Errorf("paid quantity must be > 0 for item %s", it.Name)
		}
		if paidQty[pi.OrderItemID]+pi.Quantity > it.Quantity {
			return 0, fmt.Errorf("paid quantity for %s exceeds its %d unpaid units",
				it.Name, it.Quantity-paidQty[pi.OrderItemID])
		}
		paidQty[pi.OrderItemID] += pi.Quantity
		total += float64(pi.Quantity) * it.Price
	}
	return round2(total), nil
}

func (s *service) statusFor(ctx context.Context, o *order.Order) (*StatusView, error) {
	payments, err := s.repo.ListByOrder(ctx, o.ID.String())
	if err != nil {
		return nil, err
	}
	var paid float64
	for _, rec := range payments {
		paid += rec.Amount
	}
	paid = round2(paid)
	remaining := round2(o.TotalAmount - paid)
	if remaining <= centEpsilon {
		remaining = 0
	}
	return &StatusView{
		OrderID:   o.ID,
		Total:     o.TotalAmount,
		Paid:      paid,
		Remaining: remaining,
		IsSettled: remaining == 0 && len(payments) > 0,
		Payments:  payments,
	}, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
