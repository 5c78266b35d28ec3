package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines menu management business logic.
type Service interface {
	// AddCategory creates a category for a restaurant.
	AddCategory(ctx context.Context, restaurantID string, req CreateCategoryRequest) (*Category, error)

	// ListCategories returns a restaurant's categories.
	ListCategories(ctx context.Context, restaurantID string) ([]*Category, error)

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, id string) error

	// AddItem creates a menu item under a category.
	AddItem(ctx context.Context, restaurantID string, req CreateItemRequest) (*MenuItem, error)

	// ListItems returns a restaurant's full menu with effective prices resolved
	// against the current time.
	ListItems(ctx context.Context, restaurantID string) ([]*MenuItemView, error)

	// UpdateItem edits a menu item.
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*MenuItem, error)

	// SetAvailability toggles whether an item can be ordered. Kitchen staff use
	// this as a side channel, independent of order flow.
	SetAvailability(ctx context.Context, id string, available bool) (*MenuItem, error)

	// DeleteItem removes a menu item.
	DeleteItem(ctx context.Context, id string) error

	// PriceFor returns the item and its currently effective price, used by the
	// order module to snapshot prices at placement.
	PriceFor(ctx context.Context, itemID string) (*MenuItem, float64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new menu service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) AddCategory(ctx context.Context, restaurantID string, req CreateCategoryRequest) (*Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant id: %w", err)
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage >= 100 {
		if req.DiscountPercentage != 0 {
			return nil, fmt.Errorf("invalid discount percentage %.2f", req.DiscountPercentage)
		}
	}
	c := &Category{
		ID:                 uuid.New(),
		RestaurantID:       rid,
		Name:               req.Name,
		SortOrder:          req.SortOrder,
		DiscountPercentage: req.DiscountPercentage,
		DiscountStart:      req.DiscountStart,
		DiscountEnd:        req.DiscountEnd,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context, restaurantID string) ([]*Category, error) {
	return s.repo.ListCategories(ctx, restaurantID)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) AddItem(ctx context.Context, restaurantID string, req CreateItemRequest) (*MenuItem, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be > 0")
	}
	rid, err := uuid.Parse(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant id: %w", err)
	}
	cid, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category_id: %w", err)
	}
	if req.DiscountedPrice < 0 || req.DiscountedPrice > req.Price {
		return nil, fmt.Errorf("discounted price must be between 0 and the base price")
	}

	item := &MenuItem{
		ID:                 uuid.New(),
		RestaurantID:       rid,
		CategoryID:         cid,
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		DiscountedPrice:    req.DiscountedPrice,
		DiscountPercentage: req.DiscountPercentage,
		DiscountStart:      req.DiscountStart,
		DiscountEnd:        req.DiscountEnd,
		IsAvailable:        true,
		KitchenStation:     req.KitchenStation,
		ImageURL:           req.ImageURL,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context, restaurantID string) ([]*MenuItemView, error) {
	items, err := s.repo.ListItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	now := s.now()
	views := make([]*MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, &MenuItemView{
			MenuItem:       *item,
			EffectivePrice: EffectivePrice(item, byID[item.CategoryID], now),
		})
	}
	return views, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*MenuItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be > 0")
		}
		item.Price = *req.Price
	}
	if req.DiscountedPrice != nil {
		item.DiscountedPrice = *req.DiscountedPrice
	}
	if req.DiscountPercentage != nil {
		item.DiscountPercentage = *req.DiscountPercentage
	}
	if req.DiscountStart != nil {
		item.DiscountStart = req.DiscountStart
	}
	if req.DiscountEnd != nil {
		item.DiscountEnd = req.DiscountEnd
	}
	if req.KitchenStation != "" {
		item.KitchenStation = req.KitchenStation
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) SetAvailability(ctx context.Context, id string, available bool) (*MenuItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	item.IsAvailable = available
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *service) PriceFor(ctx context.Context, itemID string) (*MenuItem, float64, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, 0, fmt.Errorf("menu item %s not found", itemID)
	}
	var category *Category
	if item.CategoryID != uuid.Nil {
		// a missing category only means no category discount applies
		if c, err := s.repo.GetCategory(ctx, item.CategoryID.String()); err == nil {
			category = c
		}
	}
	return item, EffectivePrice(item, category, s.now()), nil
}
