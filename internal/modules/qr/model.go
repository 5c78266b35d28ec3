package qr

import (
	"time"

	"github.com/google/uuid"
)

// Token is the short-lived credential embedded in a table's QR code. It
// authorizes ordering for that table until payment completes, at which point
// it is deactivated and the customer's session becomes read-only.
type Token struct {
	Token        string    `json:"token"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	TableNumber  int       `json:"table_number"`
	IsActive     bool      `json:"is_active"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// GenerateRequest is the payload for minting a table token. The customer menu
// falls back to this when it arrives with a bare table parameter and no token.
type GenerateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	TableNumber  int    `json:"table_number"`
}

// VerifyRequest is the payload for checking a scanned token.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse reports whether ordering is allowed. TableNumber is
// authoritative over whatever table the client had in its URL.
type VerifyResponse struct {
	IsActive     bool      `json:"is_active"`
	RestaurantID uuid.UUID `json:"restaurant_id,omitempty"`
	TableNumber  int       `json:"table_number,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}
