package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service defines staff management business logic.
type Service interface {
	// Add creates a staff member for a restaurant. Email must be unique
	// within the restaurant.
	Add(ctx context.Context, restaurantID string, req CreateMemberRequest) (*Member, error)

	// Get retrieves a staff member by UUID.
	Get(ctx context.Context, id string) (*Member, error)

	// List returns a restaurant's staff.
	List(ctx context.Context, restaurantID string) ([]*Member, error)

	// Update edits a staff member.
	Update(ctx context.Context, id string, req UpdateMemberRequest) (*Member, error)

	// Remove deletes a staff member.
	Remove(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new staff service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, restaurantID string, req CreateMemberRequest) (*Member, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant id: %w", err)
	}
	role := Role(strings.ToLower(req.Role))
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.repo.GetByEmail(ctx, restaurantID, email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s is already in use", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	perms := DefaultPermissions(role)
	if req.Permissions != nil {
		perms = *req.Permissions
	}

	m := &Member{
		ID:           uuid.New(),
		RestaurantID: rid,
		Name:         req.Name,
		Email:        email,
		Role:         role,
		Permissions:  perms,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, restaurantID string) ([]*Member, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateMemberRequest) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("staff member not found: %w", err)
	}
	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Role != "" {
		role := Role(strings.ToLower(req.Role))
		if !ValidRole(role) {
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
		m.Role = role
		if req.Permissions == nil {
			m.Permissions = DefaultPermissions(role)
		}
	}
	if req.Permissions != nil {
		m.Permissions = *req.Permissions
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("staff member not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
