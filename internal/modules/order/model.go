package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order. Orders only move
// forward through this sequence; cancellation is the one sideways exit.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusDelivered Status = "delivered"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Role is the panel acting on an order. Each role sees only a subset of the
// transition table.
type Role string

const (
	RoleKitchen Role = "kitchen"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleManager Role = "manager"
)

// roleTransitions is the per-role allowed status state machine.
var roleTransitions = map[Role]map[Status][]Status{
	RoleKitchen: {
		StatusPending:   {StatusPreparing},
		StatusPreparing: {StatusReady},
	},
	RoleCashier: {
		StatusPending:   {StatusPaid}, // a bill request lets the cashier settle directly
		StatusReady:     {StatusPaid},
		StatusDelivered: {StatusPaid},
		StatusCompleted: {StatusPaid},
	},
	RoleWaiter: {
		StatusPending:   {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted, StatusDelivered, StatusCancelled},
	},
	RoleManager: {
		StatusPending:   {StatusPreparing, StatusPaid, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted, StatusDelivered, StatusPaid, StatusCancelled},
		StatusCompleted: {StatusPaid},
		StatusDelivered: {StatusPaid},
	},
}

// CanTransition reports whether role may move an order from one status to
// another.
func CanTransition(role Role, from, to Status) bool {
	table, ok := roleTransitions[role]
	if !ok {
		return false
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusPaid || s == StatusCancelled
}

// Order is one checkout from a table (or a staff manual entry). Item names
// and prices are snapshots of the menu's effective price at placement.
type Order struct {
	ID            uuid.UUID    `json:"id"`
	RestaurantID  uuid.UUID    `json:"restaurant_id"`
	TableNumber   int          `json:"table_number"`
	Status        Status       `json:"status"`
	TotalAmount   float64      `json:"total_amount"`
	Notes         string       `json:"notes,omitempty"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	Items         []*OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OrderItem is a single line within an order.
type OrderItem struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"` // effective price at order time, not live menu price
	Quantity       int       `json:"quantity"`
	Notes          string    `json:"notes,omitempty"`
	KitchenStation string    `json:"kitchen_station,omitempty"`
}

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CartLine describes one requested item at checkout.
type CartLine struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// PlaceOrderRequest is the payload for creating an order. Token is required
// for customer checkouts from a QR session and must verify active; staff
// manual entries omit it.
type PlaceOrderRequest struct {
	RestaurantID string     `json:"restaurant_id"`
	TableNumber  int        `json:"table_number"`
	Token        string     `json:"token,omitempty"`
	Items        []CartLine `json:"items"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateStatusRequest advances an order's status through a role lens.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// ChangeTableRequest moves an order to another table. Not a status
// transition.
type ChangeTableRequest struct {
	TableNumber int `json:"table_number"`
}

// Filter narrows order listings.
type Filter struct {
	RestaurantID string
	TableNumber  *int
	Status       Status
}
