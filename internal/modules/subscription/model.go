package subscription

import "time"

// Status is the lifecycle state of a restaurant subscription.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// validTransitions defines the allowed subscription state machine moves.
var validTransitions = map[Status][]Status{
	StatusTrial:     {StatusActive, StatusCancelled},
	StatusActive:    {StatusPastDue, StatusCancelled},
	StatusPastDue:   {StatusActive, StatusSuspended, StatusCancelled},
	StatusSuspended: {StatusActive, StatusCancelled},
	StatusCancelled: {},
}

// CanTransition returns true if the subscription move is allowed.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Plan is a fixed offering a restaurant subscribes to. Plans are a static
// catalog, not rows; changing them is a deploy, which is fine at this scale.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthly_price"`
	MaxTables    int     `json:"max_tables"`
	MaxMenuItems int     `json:"max_menu_items"`
	MaxStaff     int     `json:"max_staff"`
}

// Plans is the catalog, cheapest first.
var Plans = []Plan{
	{ID: "starter", Name: "Starter", MonthlyPrice: 299, MaxTables: 10, MaxMenuItems: 50, MaxStaff: 5},
	{ID: "standard", Name: "Standard", MonthlyPrice: 599, MaxTables: 30, MaxMenuItems: 200, MaxStaff: 15},
	{ID: "premium", Name: "Premium", MonthlyPrice: 999, MaxTables: 100, MaxMenuItems: 1000, MaxStaff: 50},
}

// PlanByID returns the catalog entry, or nil for unknown IDs.
func PlanByID(id string) *Plan {
	for i := range Plans {
		if Plans[i].ID == id {
			return &Plans[i]
		}
	}
	return nil
}

// Subscription ties a restaurant to a plan for the current billing period.
type Subscription struct {
	ID                 string     `json:"id"`
	RestaurantID       string     `json:"restaurant_id"`
	PlanID             string     `json:"plan_id"`
	Status             Status     `json:"status"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelReason       string     `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// InvoiceStatus is the lifecycle state of a subscription invoice.
type InvoiceStatus string

const (
	InvoiceOpen InvoiceStatus = "open"
	InvoicePaid InvoiceStatus = "paid"
	InvoiceVoid InvoiceStatus = "void"
)

// Invoice bills a restaurant for one subscription period.
type Invoice struct {
	ID             string        `json:"id"`
	SubscriptionID string        `json:"subscription_id"`
	RestaurantID   string        `json:"restaurant_id"`
	Number         string        `json:"number"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	Status         InvoiceStatus `json:"status"`
	PeriodStart    time.Time     `json:"period_start"`
	PeriodEnd      time.Time     `json:"period_end"`
	DueDate        time.Time     `json:"due_date"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CreateRequest starts a subscription for a restaurant.
type CreateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	PlanID       string `json:"plan_id"`
	TrialDays    int    `json:"trial_days,omitempty"` // 0 = start active
}

// ChangePlanRequest upgrades or downgrades the plan.
type ChangePlanRequest struct {
	PlanID string `json:"plan_id"`
}

// CancelRequest ends a subscription.
type CancelRequest struct {
	Reason string `json:"reason"`
}
