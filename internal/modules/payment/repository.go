package payment

import "context"

// Repository defines data access for payment records.
type Repository interface {
	// Create persists an installment and its covered items atomically.
	Create(ctx context.Context, rec *Record) error

	// ListByOrder returns an order's installments oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]*Record, error)
}
