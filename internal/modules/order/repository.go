package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// Create persists a new order and its items atomically in a transaction.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its items by UUID.
	GetByID(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter, newest first, items included.
	List(ctx context.Context, f Filter) ([]*Order, error)

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// MarkPaid settles an order: status and payment method move together in
	// one write so a failure cannot leave a method on an unpaid order.
	MarkPaid(ctx context.Context, id string, method string) error

	// UpdateTable moves an order to another table number.
	UpdateTable(ctx context.Context, id string, tableNumber int) error

	// Delete removes an order and its items. Hard removal, distinct from
	// cancellation.
	Delete(ctx context.Context, id string) error

	// DeleteByTable removes every non-terminal order for a restaurant table.
	// Returns the number of orders removed.
	DeleteByTable(ctx context.Context, restaurantID string, tableNumber int) (int, error)
}
