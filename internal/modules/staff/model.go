package staff

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which panel a staff login may open.
type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is a known staff role.
func ValidRole(r Role) bool {
	switch r {
	case RoleWaiter, RoleChef, RoleCashier, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Permissions are per-panel access flags. Roles give a default set that the
// business owner can override per member.
type Permissions struct {
	Kitchen  bool `json:"kitchen"`
	Cashier  bool `json:"cashier"`
	Waiter   bool `json:"waiter"`
	Reports  bool `json:"reports"`
	Settings bool `json:"settings"`
}

// DefaultPermissions returns the panel access a role starts with.
func DefaultPermissions(role Role) Permissions {
	switch role {
	case RoleChef:
		return Permissions{Kitchen: true}
	case RoleCashier:
		return Permissions{Cashier: true}
	case RoleWaiter:
		return Permissions{Waiter: true}
	case RoleManager:
		return Permissions{Kitchen: true, Cashier: true, Waiter: true, Reports: true}
	case RoleAdmin:
		return Permissions{Kitchen: true, Cashier: true, Waiter: true, Reports: true, Settings: true}
	}
	return Permissions{}
}

// Member is one staff account at a restaurant.
type Member struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         Role        `json:"role"`
	Permissions  Permissions `json:"permissions"`
	PasswordHash string      `json:"-"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateMemberRequest is the payload for adding a staff member.
type CreateMemberRequest struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	Role        string       `json:"role"`
	Permissions *Permissions `json:"permissions,omitempty"` // nil means role defaults
}

// UpdateMemberRequest is the payload for editing a staff member.
type UpdateMemberRequest struct {
	Name        string       `json:"name,omitempty"`
	Role        string       `json:"role,omitempty"`
	Permissions *Permissions `json:"permissions,omitempty"`
	Password    string       `json:"password,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
}
