package qr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTokenInactive is returned when a token exists but no longer authorizes
// ordering, either because it was deactivated at payment or because it expired.
var ErrTokenInactive = errors.New("qr token is not active")

// DefaultTTL is how long a freshly minted table token stays valid.
const DefaultTTL = 4 * time.Hour

// Service defines the QR token gate business logic.
type Service interface {
	// Generate mints a new active token for a restaurant table.
	Generate(ctx context.Context, req GenerateRequest) (*Token, error)

	// Verify checks a scanned token. An unknown, deactivated or expired token
	// yields IsActive=false; the table number in the response is authoritative.
	Verify(ctx context.Context, token string) (*VerifyResponse, error)

	// Ensure returns the token record only if it currently authorizes
	// ordering. Session join and order placement gate on this.
	Ensure(ctx context.Context, token string) (*Token, error)

	// Deactivate invalidates a token, ending its dining session. Idempotent.
	Deactivate(ctx context.Context, token string) error

	// DeactivateForTable invalidates every active token for a table. Called
	// when payment completes so the menu turns read-only on every device.
	DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error
}

type service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

// NewService creates a new QR token service. A non-positive ttl falls back to
// DefaultTTL.
func NewService(repo Repository, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{repo: repo, ttl: ttl, now: time.Now}
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (*Token, error) {
	rid, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant_id: %w", err)
	}
	if req.TableNumber <= 0 {
		return nil, fmt.Errorf("table_number must be > 0")
	}

	t := &Token{
		Token:        newTokenValue(),
		RestaurantID: rid,
		TableNumber:  req.TableNumber,
		IsActive:     true,
		ExpiresAt:    s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	t, err := s.repo.Get(ctx, token)
	if err != nil {
		// unknown tokens are reported as inactive, not as an error, so the
		// client's gate fails closed without a retry storm
		return &VerifyResponse{IsActive: false}, nil
	}
	if !t.IsActive || s.expired(t) {
		return &VerifyResponse{IsActive: false, RestaurantID: t.RestaurantID, TableNumber: t.TableNumber}, nil
	}
	return &VerifyResponse{
		IsActive:     true,
		RestaurantID: t.RestaurantID,
		TableNumber:  t.TableNumber,
		ExpiresAt:    t.ExpiresAt,
	}, nil
}

func (s *service) Ensure(ctx context.Context, token string) (*Token, error) {
	t, err := s.repo.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("qr token not found: %w", err)
	}
	if !t.IsActive || s.expired(t) {
		return nil, ErrTokenInactive
	}
	return t, nil
}

func (s *service) Deactivate(ctx context.Context, token string) error {
	return s.repo.Deactivate(ctx, token)
}

func (s *service) DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error {
	return s.repo.DeactivateForTable(ctx, restaurantID, tableNumber)
}

func (s *service) expired(t *Token) bool {
	return !t.ExpiresAt.IsZero() && s.now().After(t.ExpiresAt)
}

// newTokenValue mints an opaque token string.
func newTokenValue() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
