package report

import (
	"context"
	"fmt"
	"time"

	"github.com/masapp/masapp-backend/internal/modules/order"
	"github.com/masapp/masapp-backend/internal/modules/restaurant"
)

// OrderSource lists a restaurant's orders. Satisfied by the order service.
type OrderSource interface {
	List(ctx context.Context, f order.Filter) ([]*order.Order, error)
}

// RestaurantSource looks up restaurant metadata. Satisfied by the restaurant
// service.
type RestaurantSource interface {
	Get(ctx context.Context, id string) (*restaurant.Restaurant, error)
}

// Service recomputes dashboard aggregates from the order list on every
// request. No caching: daily volumes at a single restaurant stay small
// enough that a full pass is cheaper than keeping incremental state right.
type Service interface {
	Summary(ctx context.Context, restaurantID string) (*Summary, error)
	Trend(ctx context.Context, restaurantID, period string) ([]TrendPoint, error)
	TopProducts(ctx context.Context, restaurantID string) ([]TopProduct, error)
	Hourly(ctx context.Context, restaurantID string) ([]HourStats, error)
}

type service struct {
	orders      OrderSource
	restaurants RestaurantSource
	now         func() time.Time
}

// NewService creates a new report service.
func NewService(orders OrderSource, restaurants RestaurantSource) Service {
	return &service{orders: orders, restaurants: restaurants, now: time.Now}
}

func (s *service) Summary(ctx context.Context, restaurantID string) (*Summary, error) {
	orders, err := s.fetch(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return Summarize(orders, s.now()), nil
}

func (s *service) Trend(ctx context.Context, restaurantID, period string) ([]TrendPoint, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, "":
	default:
		return nil, fmt.Errorf("invalid period %q", period)
	}
	orders, err := s.fetch(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	var created time.Time
	if rest, err := s.restaurants.Get(ctx, restaurantID); err == nil {
		created = rest.CreatedAt
	}
	return Trend(orders, created, s.now(), period), nil
}

func (s *service) TopProducts(ctx context.Context, restaurantID string) ([]TopProduct, error) {
	orders, err := s.fetch(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return TopProducts(orders), nil
}

func (s *service) Hourly(ctx context.Context, restaurantID string) ([]HourStats, error) {
	orders, err := s.fetch(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return HourlyHistogram(orders), nil
}

func (s *service) fetch(ctx context.Context, restaurantID string) ([]*order.Order, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required")
	}
	return s.orders.List(ctx, order.Filter{RestaurantID: restaurantID})
}
