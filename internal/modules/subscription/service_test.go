package subscription

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"
)

type fakeSubRepo struct {
	mu       sync.Mutex
	subs     map[string]*Subscription // restaurantID -> sub
	invoices map[string]*Invoice
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{subs: make(map[string]*Subscription), invoices: make(map[string]*Invoice)}
}

func (r *fakeSubRepo) Create(ctx context.Context, sub *Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.subs[sub.RestaurantID] = &cp
	return nil
}

func (r *fakeSubRepo) GetByRestaurant(ctx context.Context, restaurantID string) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[restaurantID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubRepo) UpdateStatus(ctx context.Context, id string, status Status, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.ID == id {
			sub.Status = status
			sub.CancelReason = reason
		}
	}
	return nil
}

func (r *fakeSubRepo) UpdatePlan(ctx context.Context, id, planID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.ID == id {
			sub.PlanID = planID
		}
	}
	return nil
}

func (r *fakeSubRepo) RenewPeriod(ctx context.Context, id string, start, end interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.ID == id {
			sub.CurrentPeriodStart = start.(time.Time)
			sub.CurrentPeriodEnd = end.(time.Time)
		}
	}
	return nil
}

func (r *fakeSubRepo) ListExpired(ctx context.Context) ([]*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var out []*Subscription
	for _, sub := range r.subs {
		if sub.CurrentPeriodEnd.Before(now) && (sub.Status == StatusActive || sub.Status == StatusTrial) {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) CreateInvoice(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeSubRepo) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeSubRepo) ListInvoices(ctx context.Context, restaurantID string) ([]*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Invoice
	for _, inv := range r.invoices {
		if inv.RestaurantID == restaurantID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) MarkInvoicePaid(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok {
		inv.Status = InvoicePaid
		now := time.Now()
		inv.PaidAt = &now
	}
	return nil
}

func (r *fakeSubRepo) status(restaurantID string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[restaurantID].Status
}

func TestSubscriptionTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"trialActivates", StatusTrial, StatusActive, true},
		{"trialCancels", StatusTrial, StatusCancelled, true},
		{"trialCannotGoPastDue", StatusTrial, StatusPastDue, false},
		{"activeLapses", StatusActive, StatusPastDue, true},
		{"pastDueRecovers", StatusPastDue, StatusActive, true},
		{"pastDueSuspends", StatusPastDue, StatusSuspended, true},
		{"suspendedRecovers", StatusSuspended, StatusActive, true},
		{"cancelledIsTerminal", StatusCancelled, StatusActive, false},
		{"activeCannotReenterTrial", StatusActive, StatusTrial, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCreateSubscription(t *testing.T) {
	svc := NewService(newFakeSubRepo())
	ctx := context.Background()

	sub, err := svc.Create(ctx, CreateRequest{RestaurantID: "r1", PlanID: "standard"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Status != StatusActive {
		t.Errorf("status = %s, want active without trial days", sub.Status)
	}

	if _, err := svc.Create(ctx, CreateRequest{RestaurantID: "r1", PlanID: "starter"}); err == nil {
		t.Error("second subscription for the same restaurant accepted")
	}
	if _, err := svc.Create(ctx, CreateRequest{RestaurantID: "r2", PlanID: "gold"}); err == nil {
		t.Error("unknown plan accepted")
	}

	trial, err := svc.Create(ctx, CreateRequest{RestaurantID: "r3", PlanID: "starter", TrialDays: 14})
	if err != nil {
		t.Fatalf("Create trial: %v", err)
	}
	if trial.Status != StatusTrial || trial.TrialEndsAt == nil {
		t.Errorf("trial = %+v, want trial status with an end date", trial)
	}
}

func TestRenewAndPayInvoice(t *testing.T) {
	repo := newFakeSubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	sub, err := svc.Create(ctx, CreateRequest{RestaurantID: "r1", PlanID: "premium"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	prevEnd := sub.CurrentPeriodEnd

	inv, err := svc.Renew(ctx, "r1")
	if err != nil {
		t.Fatalf("Renew: %v", err)
	}
	if inv.Amount != PlanByID("premium").MonthlyPrice || inv.Status != InvoiceOpen {
		t.Errorf("invoice = %+v, want an open invoice at the plan price", inv)
	}
	if !inv.PeriodStart.Equal(prevEnd) {
		t.Errorf("new period starts %v, want the old period's end %v", inv.PeriodStart, prevEnd)
	}

	// Simulate the period lapsing unpaid.
	repo.subs["r1"].Status = StatusPastDue

	paid, err := svc.PayInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("PayInvoice: %v", err)
	}
	if paid.Status != InvoicePaid || paid.PaidAt == nil {
		t.Errorf("paid invoice = %+v", paid)
	}
	if repo.subs["r1"].Status != StatusActive {
		t.Errorf("subscription = %s, want active again after payment", repo.subs["r1"].Status)
	}

	if _, err := svc.PayInvoice(ctx, inv.ID); err == nil {
		t.Error("paying an already paid invoice accepted")
	}
}

func TestMarkOverdue(t *testing.T) {
	repo := newFakeSubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{RestaurantID: "r1", PlanID: "starter"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, CreateRequest{RestaurantID: "r2", PlanID: "starter", TrialDays: 7}); err != nil {
		t.Fatal(err)
	}
	repo.subs["r1"].CurrentPeriodEnd = time.Now().Add(-time.Hour)
	repo.subs["r2"].CurrentPeriodEnd = time.Now().Add(-time.Hour)

	flagged, err := svc.MarkOverdue(ctx)
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if flagged != 2 {
		t.Errorf("flagged = %d, want 2", flagged)
	}
	if repo.subs["r1"].Status != StatusPastDue {
		t.Errorf("active sub = %s, want past_due", repo.subs["r1"].Status)
	}
	if repo.subs["r2"].Status != StatusCancelled {
		t.Errorf("lapsed trial = %s, want cancelled", repo.subs["r2"].Status)
	}
}

func TestOverdueSweep(t *testing.T) {
	repo := newFakeSubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{RestaurantID: "r1", PlanID: "starter"}); err != nil {
		t.Fatal(err)
	}
	repo.mu.Lock()
	repo.subs["r1"].CurrentPeriodEnd = time.Now().Add(-time.Hour)
	repo.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	StartOverdueSweep(svc, 5*time.Millisecond, stop)

	deadline := time.Now().Add(2 * time.Second)
	for repo.status("r1") != StatusPastDue {
		if time.Now().After(deadline) {
			t.Fatalf("subscription = %s, sweep never flagged it past_due", repo.status("r1"))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
