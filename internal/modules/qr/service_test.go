package qr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeTokenRepo struct {
	tokens map[string]*Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*Token)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, t *Token) error {
	r.tokens[t.Token] = t
	return nil
}

func (r *fakeTokenRepo) Get(ctx context.Context, token string) (*Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Deactivate(ctx context.Context, token string) error {
	if t, ok := r.tokens[token]; ok {
		t.IsActive = false
	}
	return nil
}

func (r *fakeTokenRepo) DeactivateForTable(ctx context.Context, restaurantID string, tableNumber int) error {
	for _, t := range r.tokens {
		if t.RestaurantID.String() == restaurantID && t.TableNumber == tableNumber {
			t.IsActive = false
		}
	}
	return nil
}

func newTestQR(repo Repository, now *time.Time) Service {
	svc := NewService(repo, DefaultTTL).(*service)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestGenerateAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestQR(repo, &now)
	ctx := context.Background()
	rid := uuid.New()

	tok, err := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if tok.Token == "" || !tok.IsActive || tok.TableNumber != 4 {
		t.Errorf("generated token = %+v", tok)
	}
	if !tok.ExpiresAt.Equal(now.Add(DefaultTTL)) {
		t.Errorf("expiry = %v, want now+%v", tok.ExpiresAt, DefaultTTL)
	}

	v, err := svc.Verify(ctx, tok.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !v.IsActive || v.TableNumber != 4 || v.RestaurantID != rid {
		t.Errorf("verify = %+v, want active table 4", v)
	}
}

func TestGenerateValidation(t *testing.T) {
	now := time.Now()
	svc := newTestQR(newFakeTokenRepo(), &now)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, GenerateRequest{RestaurantID: "not-a-uuid", TableNumber: 1}); err == nil {
		t.Error("bad restaurant id accepted")
	}
	if _, err := svc.Generate(ctx, GenerateRequest{RestaurantID: uuid.New().String(), TableNumber: 0}); err == nil {
		t.Error("table 0 accepted")
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestQR(repo, &now)
	ctx := context.Background()
	rid := uuid.New()

	// Unknown token: inactive, not an error.
	v, err := svc.Verify(ctx, "no-such-token")
	if err != nil {
		t.Fatalf("Verify unknown: %v", err)
	}
	if v.IsActive {
		t.Error("unknown token verified active")
	}

	tok, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 2})

	// Deactivated token.
	if err := svc.Deactivate(ctx, tok.Token); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if v, _ := svc.Verify(ctx, tok.Token); v.IsActive {
		t.Error("deactivated token verified active")
	}

	// Expired token.
	tok2, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 2})
	now = now.Add(DefaultTTL + time.Minute)
	if v, _ := svc.Verify(ctx, tok2.Token); v.IsActive {
		t.Error("expired token verified active")
	}
}

func TestEnsure(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestQR(repo, &now)
	ctx := context.Background()
	rid := uuid.New()

	tok, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 8})

	got, err := svc.Ensure(ctx, tok.Token)
	if err != nil {
		t.Fatalf("Ensure active: %v", err)
	}
	if got.TableNumber != 8 {
		t.Errorf("table = %d, want 8", got.TableNumber)
	}

	if _, err := svc.Ensure(ctx, "no-such-token"); err == nil {
		t.Error("Ensure allowed an unknown token")
	}

	svc.Deactivate(ctx, tok.Token)
	if _, err := svc.Ensure(ctx, tok.Token); !errors.Is(err, ErrTokenInactive) {
		t.Errorf("Ensure on deactivated token = %v, want ErrTokenInactive", err)
	}
}

func TestDeactivateForTable(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestQR(repo, &now)
	ctx := context.Background()
	rid := uuid.New()

	a, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 3})
	b, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 3})
	other, _ := svc.Generate(ctx, GenerateRequest{RestaurantID: rid.String(), TableNumber: 4})

	if err := svc.DeactivateForTable(ctx, rid.String(), 3); err != nil {
		t.Fatalf("DeactivateForTable: %v", err)
	}

	for _, tok := range []*Token{a, b} {
		if v, _ := svc.Verify(ctx, tok.Token); v.IsActive {
			t.Errorf("table 3 token %s still active after payment", tok.Token)
		}
	}
	if v, _ := svc.Verify(ctx, other.Token); !v.IsActive {
		t.Error("table 4 token was deactivated by table 3's payment")
	}
}
