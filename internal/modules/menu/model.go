package menu

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items and may carry a discount window applied to all
// contained items when no item-level discount is active.
type Category struct {
	ID                 uuid.UUID  `json:"id"`
	RestaurantID       uuid.UUID  `json:"restaurant_id"`
	Name               string     `json:"name"`
	SortOrder          int        `json:"sort_order"`
	DiscountPercentage float64    `json:"discount_percentage,omitempty"`
	DiscountStart      *time.Time `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time `json:"discount_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MenuItem is a sellable dish. Discount fields are evaluated against the
// current time to compute the effective price; order items snapshot that
// price at placement.
type MenuItem struct {
	ID                 uuid.UUID  `json:"id"`
	RestaurantID       uuid.UUID  `json:"restaurant_id"`
	CategoryID         uuid.UUID  `json:"category_id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Price              float64    `json:"price"`
	DiscountedPrice    float64    `json:"discounted_price,omitempty"`
	DiscountPercentage float64    `json:"discount_percentage,omitempty"`
	DiscountStart      *time.Time `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time `json:"discount_end,omitempty"`
	IsAvailable        bool       `json:"is_available"`
	KitchenStation     string     `json:"kitchen_station,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MenuItemView is a MenuItem decorated with its currently effective price.
type MenuItemView struct {
	MenuItem
	EffectivePrice float64 `json:"effective_price"`
}

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateCategoryRequest is the payload for adding a menu category.
type CreateCategoryRequest struct {
	Name               string     `json:"name"`
	SortOrder          int        `json:"sort_order,omitempty"`
	DiscountPercentage float64    `json:"discount_percentage,omitempty"`
	DiscountStart      *time.Time `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time `json:"discount_end,omitempty"`
}

// CreateItemRequest is the payload for adding a menu item.
type CreateItemRequest struct {
	CategoryID         string     `json:"category_id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Price              float64    `json:"price"`
	DiscountedPrice    float64    `json:"discounted_price,omitempty"`
	DiscountPercentage float64    `json:"discount_percentage,omitempty"`
	DiscountStart      *time.Time `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time `json:"discount_end,omitempty"`
	KitchenStation     string     `json:"kitchen_station,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
}

// UpdateItemRequest is the payload for editing a menu item.
type UpdateItemRequest struct {
	Name               string     `json:"name,omitempty"`
	Description        string     `json:"description,omitempty"`
	Price              *float64   `json:"price,omitempty"`
	DiscountedPrice    *float64   `json:"discounted_price,omitempty"`
	DiscountPercentage *float64   `json:"discount_percentage,omitempty"`
	DiscountStart      *time.Time `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time `json:"discount_end,omitempty"`
	KitchenStation     string     `json:"kitchen_station,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
}

// SetAvailabilityRequest toggles whether an item can currently be ordered.
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}
