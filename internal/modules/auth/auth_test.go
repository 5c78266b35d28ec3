package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/masapp/masapp-backend/internal/modules/staff"
)

type fakeStaffRepo struct {
	member *staff.Member
}

func (r *fakeStaffRepo) Create(ctx context.Context, m *staff.Member) error { return nil }

func (r *fakeStaffRepo) GetByID(ctx context.Context, id string) (*staff.Member, error) {
	return nil, fmt.Errorf("no rows")
}

func (r *fakeStaffRepo) GetByEmail(ctx context.Context, restaurantID, email string) (*staff.Member, error) {
	if r.member != nil && r.member.RestaurantID.String() == restaurantID && r.member.Email == email {
		return r.member, nil
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeStaffRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*staff.Member, error) {
	return nil, nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, m *staff.Member) error { return nil }
func (r *fakeStaffRepo) Delete(ctx context.Context, id string) error       { return nil }

func testMember(t *testing.T, password string) *staff.Member {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &staff.Member{
		ID:           uuid.New(),
		RestaurantID: uuid.New(),
		Name:         "Deniz",
		Email:        "deniz@example.com",
		Role:         staff.RoleCashier,
		Permissions:  staff.DefaultPermissions(staff.RoleCashier),
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func TestLoginAndVerify(t *testing.T) {
	member := testMember(t, "hunter2")
	svc := NewService(&fakeStaffRepo{member: member}, "test-secret")
	ctx := context.Background()
	rid := member.RestaurantID.String()

	result, err := svc.Login(ctx, rid, "deniz@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login returned an empty token")
	}

	claims, err := svc.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.StaffID != member.ID.String() || claims.RestaurantID != rid {
		t.Errorf("claims = %+v, want the member's identity", claims)
	}
	if claims.Role != "cashier" || !claims.Permissions.Cashier {
		t.Errorf("claims carry %s/%+v, want the cashier role and panel", claims.Role, claims.Permissions)
	}
}

func TestLoginFailures(t *testing.T) {
	member := testMember(t, "hunter2")
	svc := NewService(&fakeStaffRepo{member: member}, "test-secret")
	ctx := context.Background()
	rid := member.RestaurantID.String()

	tests := []struct {
		name     string
		mutate   func()
		email    string
		password string
	}{
		{name: "wrongPassword", email: "deniz@example.com", password: "wrong"},
		{name: "unknownEmail", email: "nobody@example.com", password: "hunter2"},
		{
			name:     "inactiveAccount",
			mutate:   func() { member.IsActive = false },
			email:    "deniz@example.com",
			password: "hunter2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mutate != nil {
				tt.mutate()
			}
			_, err := svc.Login(ctx, rid, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	member := testMember(t, "pw")
	svc := NewService(&fakeStaffRepo{member: member}, "real-secret")
	forger := NewService(&fakeStaffRepo{member: member}, "other-secret")
	ctx := context.Background()

	result, err := forger.Login(ctx, member.RestaurantID.String(), "deniz@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.Verify(result.Token); err == nil {
		t.Error("token signed with another secret verified")
	}
	if _, err := svc.Verify("not.a.token"); err == nil {
		t.Error("garbage token verified")
	}
}
