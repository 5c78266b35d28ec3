package restaurant

import "context"

// Repository defines data access for restaurants.
type Repository interface {
	// Create persists a new restaurant.
	Create(ctx context.Context, r *Restaurant) error

	// GetByID retrieves a restaurant by UUID.
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// GetByUsername retrieves a restaurant by its subdomain slug.
	GetByUsername(ctx context.Context, username string) (*Restaurant, error)

	// List returns all restaurants.
	List(ctx context.Context) ([]*Restaurant, error)

	// Update persists edited restaurant details.
	Update(ctx context.Context, r *Restaurant) error
}
