package qr

import "context"

// Repository defines data access for QR tokens.
type Repository interface {
	// Create persists a new token.
	Create(ctx context.Context, t *Token) error

	// Get retrieves a token by its value.
	Get(ctx context.Context, token string) (*Token, error)

	// Deactivate marks a token inactive. Deactivating an already inactive
	// token is a no-op.
	Deactivate(ctx context.Context, token string) error

	// DeactivateForTable marks every active token for a restaurant table
	// inactive, used when payment completes.
	DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error
}
