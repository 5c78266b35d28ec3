package restaurant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Service defines restaurant management business logic.
type Service interface {
	// Register creates a new restaurant tenant.
	Register(ctx context.Context, req CreateRestaurantRequest) (*Restaurant, error)

	// Get retrieves a restaurant by UUID.
	Get(ctx context.Context, id string) (*Restaurant, error)

	// GetBySubdomain retrieves a restaurant by its subdomain slug.
	GetBySubdomain(ctx context.Context, username string) (*Restaurant, error)

	// List returns all restaurants.
	List(ctx context.Context) ([]*Restaurant, error)

	// Update edits restaurant details.
	Update(ctx context.Context, id string, req UpdateRestaurantRequest) (*Restaurant, error)
}

type service struct {
	repo Repository
}

// NewService creates a new restaurant service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// usernames become subdomains, so they must be DNS-label safe
var usernamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

func (s *service) Register(ctx context.Context, req CreateRestaurantRequest) (*Restaurant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("invalid username %q: must be a lowercase subdomain slug", req.Username)
	}
	if existing, err := s.repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, fmt.Errorf("username %q is already taken", username)
	}

	currency := req.Currency
	if currency == "" {
		currency = "TRY"
	}

	rest := &Restaurant{
		ID:       uuid.New(),
		Name:     req.Name,
		Username: username,
		Currency: currency,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *service) Get(ctx context.Context, id string) (*Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySubdomain(ctx context.Context, username string) (*Restaurant, error) {
	return s.repo.GetByUsername(ctx, strings.ToLower(username))
}

func (s *service) List(ctx context.Context) ([]*Restaurant, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRestaurantRequest) (*Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("restaurant not found: %w", err)
	}
	if req.Name != "" {
		rest.Name = req.Name
	}
	if req.Address != "" {
		rest.Address = req.Address
	}
	if req.Phone != "" {
		rest.Phone = req.Phone
	}
	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}
