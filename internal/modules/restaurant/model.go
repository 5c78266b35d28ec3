package restaurant

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a tenant: one business with its own menu, staff and orders.
type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"` // subdomain slug used by the customer menu URL
	Currency  string    `json:"currency"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRestaurantRequest is the payload for registering a new restaurant.
type CreateRestaurantRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Currency string `json:"currency,omitempty"` // defaults to TRY
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateRestaurantRequest is the payload for editing restaurant details.
type UpdateRestaurantRequest struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
