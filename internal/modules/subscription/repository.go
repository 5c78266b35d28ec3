package subscription

import "context"

// Repository defines data access for subscriptions and their invoices.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByRestaurant(ctx context.Context, restaurantID string) (*Subscription, error)
	UpdateStatus(ctx context.Context, id string, status Status, reason string) error
	UpdatePlan(ctx context.Context, id, planID string) error
	RenewPeriod(ctx context.Context, id string, start, end interface{}) error
	ListExpired(ctx context.Context) ([]*Subscription, error)

	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, restaurantID string) ([]*Invoice, error)
	MarkInvoicePaid(ctx context.Context, id string) error
}
