package restaurant

import (
	"context"
	"fmt"
	"testing"
)

type fakeRestaurantRepo struct {
	byID       map[string]*Restaurant
	byUsername map[string]*Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{
		byID:       make(map[string]*Restaurant),
		byUsername: make(map[string]*Restaurant),
	}
}

func (r *fakeRestaurantRepo) Create(ctx context.Context, rest *Restaurant) error {
	r.byID[rest.ID.String()] = rest
	r.byUsername[rest.Username] = rest
	return nil
}

func (r *fakeRestaurantRepo) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	rest, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return rest, nil
}

func (r *fakeRestaurantRepo) GetByUsername(ctx context.Context, username string) (*Restaurant, error) {
	rest, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return rest, nil
}

func (r *fakeRestaurantRepo) List(ctx context.Context) ([]*Restaurant, error) {
	var out []*Restaurant
	for _, rest := range r.byID {
		out = append(out, rest)
	}
	return out, nil
}

func (r *fakeRestaurantRepo) Update(ctx context.Context, rest *Restaurant) error {
	r.byID[rest.ID.String()] = rest
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRestaurantRepo())
	ctx := context.Background()

	rest, err := svc.Register(ctx, CreateRestaurantRequest{Name: "Masa Kebap", Username: "Masa-Kebap"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rest.Username != "masa-kebap" {
		t.Errorf("username = %q, want lowercased slug", rest.Username)
	}
	if rest.Currency != "TRY" {
		t.Errorf("currency = %q, want TRY default", rest.Currency)
	}
	if !rest.IsActive {
		t.Error("new restaurant should start active")
	}

	if _, err := svc.Register(ctx, CreateRestaurantRequest{Name: "Copycat", Username: "masa-kebap"}); err == nil {
		t.Error("duplicate username accepted")
	}

	got, err := svc.GetBySubdomain(ctx, "MASA-KEBAP")
	if err != nil {
		t.Fatalf("GetBySubdomain: %v", err)
	}
	if got.ID != rest.ID {
		t.Error("subdomain lookup found a different restaurant")
	}
}

func TestRegisterUsernameValidation(t *testing.T) {
	svc := NewService(newFakeRestaurantRepo())
	ctx := context.Background()

	bad := []string{"", "-leading", "trailing-", "has space", "under_score", "ümlaut"}
	for _, username := range bad {
		if _, err := svc.Register(ctx, CreateRestaurantRequest{Name: "X", Username: username}); err == nil {
			t.Errorf("username %q accepted, want rejection", username)
		}
	}

	good := []string{"ab", "cafe42", "my-place", "x0"}
	for i, username := range good {
		req := CreateRestaurantRequest{Name: fmt.Sprintf("Place %d", i), Username: username, Currency: "EUR"}
		rest, err := svc.Register(ctx, req)
		if err != nil {
			t.Errorf("username %q rejected: %v", username, err)
			continue
		}
		if rest.Currency != "EUR" {
			t.Errorf("explicit currency overridden: %q", rest.Currency)
		}
	}

	if _, err := svc.Register(ctx, CreateRestaurantRequest{Username: "no-name"}); err == nil {
		t.Error("missing name accepted")
	}
}
