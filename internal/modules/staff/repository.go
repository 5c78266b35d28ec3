package staff

import "context"

// Repository defines data access for staff members.
type Repository interface {
	// Create persists a new staff member.
	Create(ctx context.Context, m *Member) error

	// GetByID retrieves a staff member by UUID.
	GetByID(ctx context.Context, id string) (*Member, error)

	// GetByEmail retrieves a staff member by email within a restaurant.
	GetByEmail(ctx context.Context, restaurantID, email string) (*Member, error)

	// ListByRestaurant returns all of a restaurant's staff.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error)

	// Update persists edited staff fields.
	Update(ctx context.Context, m *Member) error

	// Delete removes a staff member.
	Delete(ctx context.Context, id string) error
}
