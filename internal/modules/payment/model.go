package payment

import (
	"time"

	"github.com/google/uuid"
)

// Method is how an installment was settled.
type Method string

const (
	MethodCash Method = "cash"
	MethodCard Method = "card"
)

// Record is one settled installment against an order. A single-payment flow
// produces one record covering the whole total; a split flow produces
// several, each optionally naming the item quantities it covers.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	OrderID   uuid.UUID  `json:"order_id"`
	Method    Method     `json:"method"`
	Amount    float64    `json:"amount"`
	Items     []PaidItem `json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PaidItem marks a quantity of one order item as covered by an installment.
type PaidItem struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Name        string    `json:"name,omitempty"`
	Quantity    int       `json:"quantity"`
}

// StatusView is the cashier's balance sheet for an order: the invariant is
// that the sum of installment amounts plus the remaining balance always
// equals the order total.
type StatusView struct {
	OrderID   uuid.UUID `json:"order_id"`
	Total     float64   `json:"total"`
	Paid      float64   `json:"paid"`
	Remaining float64   `json:"remaining"`
	IsSettled bool      `json:"is_settled"`
	Payments  []*Record `json:"payments"`
}

// RecordRequest is the payload for registering an installment. A zero
// Amount means "the whole remaining balance" (the single-payment flow).
type RecordRequest struct {
	Method string     `json:"method"`
	Amount float64    `json:"amount,omitempty"`
	Items  []PaidItem `json:"items,omitempty"`
}
