package auth

import "context"

// Service defines the interface for staff authentication.
type Service interface {
	// Login checks a staff member's credentials and returns a signed token
	// plus the member's profile.
	Login(ctx context.Context, restaurantID, email, password string) (*LoginResult, error)

	// Verify parses a token and returns its claims.
	Verify(tokenString string) (*Claims, error)
}
