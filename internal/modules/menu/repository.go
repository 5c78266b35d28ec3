package menu

import "context"

// Repository defines data access for categories and menu items.
type Repository interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, c *Category) error

	// ListCategories returns a restaurant's categories ordered by sort order.
	ListCategories(ctx context.Context, restaurantID string) ([]*Category, error)

	// GetCategory retrieves a category by UUID.
	GetCategory(ctx context.Context, id string) (*Category, error)

	// DeleteCategory removes a category. Items keep their category_id and are
	// treated as having no category discount afterwards.
	DeleteCategory(ctx context.Context, id string) error

	// CreateItem persists a new menu item.
	CreateItem(ctx context.Context, item *MenuItem) error

	// GetItem retrieves a menu item by UUID.
	GetItem(ctx context.Context, id string) (*MenuItem, error)

	// ListItems returns all of a restaurant's menu items.
	ListItems(ctx context.Context, restaurantID string) ([]*MenuItem, error)

	// UpdateItem persists edited menu item fields.
	UpdateItem(ctx context.Context, item *MenuItem) error

	// SetAvailability toggles whether an item can be ordered.
	SetAvailability(ctx context.Context, id string, available bool) error

	// DeleteItem removes a menu item.
	DeleteItem(ctx context.Context, id string) error
}
