package staff

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeStaffRepo struct {
	members map[string]*Member
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: make(map[string]*Member)}
}

func (r *fakeStaffRepo) Create(ctx context.Context, m *Member) error {
	r.members[m.ID.String()] = m
	return nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return m, nil
}

func (r *fakeStaffRepo) GetByEmail(ctx context.Context, restaurantID, email string) (*Member, error) {
	for _, m := range r.members {
		if m.RestaurantID.String() == restaurantID && m.Email == email {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeStaffRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Member, error) {
	var out []*Member
	for _, m := range r.members {
		if m.RestaurantID.String() == restaurantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, m *Member) error {
	r.members[m.ID.String()] = m
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	delete(r.members, id)
	return nil
}

func TestAddMember(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	ctx := context.Background()
	rid := uuid.New().String()

	m, err := svc.Add(ctx, rid, CreateMemberRequest{
		Name: "Ayşe", Email: "Ayse@Example.com", Password: "s3cret", Role: "Chef",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.Email != "ayse@example.com" {
		t.Errorf("email = %q, want normalized lowercase", m.Email)
	}
	if m.Role != RoleChef {
		t.Errorf("role = %s, want chef", m.Role)
	}
	if !m.Permissions.Kitchen || m.Permissions.Cashier {
		t.Errorf("permissions = %+v, want chef defaults", m.Permissions)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte("s3cret")); err != nil {
		t.Error("stored hash does not verify the password")
	}
	if m.PasswordHash == "s3cret" {
		t.Error("password stored in the clear")
	}

	// Same email within the restaurant is rejected; another tenant may reuse it.
	if _, err := svc.Add(ctx, rid, CreateMemberRequest{Name: "B", Email: "ayse@example.com", Password: "x", Role: "waiter"}); err == nil {
		t.Error("duplicate email within restaurant accepted")
	}
	if _, err := svc.Add(ctx, uuid.New().String(), CreateMemberRequest{Name: "B", Email: "ayse@example.com", Password: "x", Role: "waiter"}); err != nil {
		t.Errorf("same email at another restaurant rejected: %v", err)
	}

	if _, err := svc.Add(ctx, rid, CreateMemberRequest{Name: "C", Email: "c@example.com", Password: "x", Role: "janitor"}); err == nil {
		t.Error("unknown role accepted")
	}
	if _, err := svc.Add(ctx, rid, CreateMemberRequest{Email: "d@example.com", Password: "x", Role: "waiter"}); err == nil {
		t.Error("missing name accepted")
	}
}

func TestUpdateMemberRoleResetsPermissions(t *testing.T) {
	svc := NewService(newFakeStaffRepo())
	ctx := context.Background()
	rid := uuid.New().String()

	m, err := svc.Add(ctx, rid, CreateMemberRequest{Name: "Kadir", Email: "k@example.com", Password: "pw", Role: "waiter"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := svc.Update(ctx, m.ID.String(), UpdateMemberRequest{Role: "manager"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Permissions.Reports || updated.Permissions.Settings {
		t.Errorf("permissions = %+v, want manager defaults", updated.Permissions)
	}

	// Explicit permissions win over role defaults.
	custom := Permissions{Waiter: true, Reports: true}
	updated, err = svc.Update(ctx, m.ID.String(), UpdateMemberRequest{Role: "waiter", Permissions: &custom})
	if err != nil {
		t.Fatalf("Update with custom permissions: %v", err)
	}
	if updated.Permissions != custom {
		t.Errorf("permissions = %+v, want the explicit override", updated.Permissions)
	}
}

func TestDefaultPermissions(t *testing.T) {
	tests := []struct {
		role Role
		want Permissions
	}{
		{RoleChef, Permissions{Kitchen: true}},
		{RoleCashier, Permissions{Cashier: true}},
		{RoleWaiter, Permissions{Waiter: true}},
		{RoleManager, Permissions{Kitchen: true, Cashier: true, Waiter: true, Reports: true}},
		{RoleAdmin, Permissions{Kitchen: true, Cashier: true, Waiter: true, Reports: true, Settings: true}},
		{Role("unknown"), Permissions{}},
	}
	for _, tt := range tests {
		if got := DefaultPermissions(tt.role); got != tt.want {
			t.Errorf("DefaultPermissions(%s) = %+v, want %+v", tt.role, got, tt.want)
		}
	}
}
