package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/masapp/masapp-backend/internal/modules/qr"
)

func TestMailboxPendingUntilAcked(t *testing.T) {
	store := NewStore()

	n := store.Add(Notification{
		RestaurantID: "r1",
		TableNumber:  5,
		Channel:      ChannelCashier,
		Kind:         KindBillRequest,
	})
	if n.ID == "" || n.CreatedAt.IsZero() {
		t.Fatalf("Add did not assign identity: %+v", n)
	}

	// Repeated polls keep returning the un-acked entry.
	for i := 0; i < 3; i++ {
		pending := store.Pending("r1", ChannelCashier)
		if len(pending) != 1 || pending[0].ID != n.ID {
			t.Fatalf("poll %d: pending = %+v, want the one entry", i, pending)
		}
	}

	if !store.Ack("r1", n.ID) {
		t.Fatal("Ack of a known ID returned false")
	}
	if pending := store.Pending("r1", ChannelCashier); len(pending) != 0 {
		t.Errorf("acked entry still pending: %+v", pending)
	}
	if store.Ack("r1", "nope") {
		t.Error("Ack of an unknown ID returned true")
	}
}

func TestMailboxChannelAndTenantIsolation(t *testing.T) {
	store := NewStore()
	store.Add(Notification{RestaurantID: "r1", Channel: ChannelCashier, Kind: KindBillRequest})
	store.Add(Notification{RestaurantID: "r1", Channel: ChannelKitchen, Kind: KindTableTransfer})
	store.Add(Notification{RestaurantID: "r2", Channel: ChannelCashier, Kind: KindBillRequest})

	if got := store.Pending("r1", ChannelCashier); len(got) != 1 || got[0].Kind != KindBillRequest {
		t.Errorf("r1 cashier = %+v, want only the bill request", got)
	}
	if got := store.Pending("r1", ChannelKitchen); len(got) != 1 || got[0].Kind != KindTableTransfer {
		t.Errorf("r1 kitchen = %+v, want only the transfer", got)
	}
	if got := store.Pending("r2", ChannelKitchen); len(got) != 0 {
		t.Errorf("r2 kitchen = %+v, want none", got)
	}
}

func TestMailboxSweep(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return now }

	acked := store.Add(Notification{RestaurantID: "r1", Channel: ChannelCashier})
	kept := store.Add(Notification{RestaurantID: "r1", Channel: ChannelCashier})
	store.Ack("r1", acked.ID)

	now = now.Add(ackedTTL + time.Minute)
	store.Sweep()

	// The old acked entry is gone; the un-acked one survives any amount of
	// time.
	if store.Ack("r1", acked.ID) {
		t.Error("swept entry still ackable")
	}
	if pending := store.Pending("r1", ChannelCashier); len(pending) != 1 || pending[0].ID != kept.ID {
		t.Errorf("pending after sweep = %+v, want the un-acked entry", pending)
	}
}

type fakeGate struct {
	token *qr.Token
	err   error
}

func (g *fakeGate) Ensure(ctx context.Context, token string) (*qr.Token, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.token, nil
}

func TestRequestBill(t *testing.T) {
	rid := uuid.New()
	gate := &fakeGate{token: &qr.Token{Token: "tok", RestaurantID: rid, TableNumber: 9, IsActive: true}}
	store := NewStore()
	svc := NewService(store, gate)
	ctx := context.Background()

	n, err := svc.RequestBill(ctx, BillRequest{Token: "tok"})
	if err != nil {
		t.Fatalf("RequestBill: %v", err)
	}
	if n.Channel != ChannelCashier || n.Kind != KindBillRequest {
		t.Errorf("notification = %+v, want a cashier bill request", n)
	}
	if n.RestaurantID != rid.String() || n.TableNumber != 9 {
		t.Errorf("identity = %s/%d, want the token's restaurant and table", n.RestaurantID, n.TableNumber)
	}

	pending, err := svc.Pending(ctx, rid.String(), ChannelCashier)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %+v, want the bill request", pending)
	}
	if err := svc.Ack(ctx, rid.String(), pending[0].ID); err != nil {
		t.Errorf("Ack: %v", err)
	}
}

func TestRequestBillGated(t *testing.T) {
	gate := &fakeGate{err: qr.ErrTokenInactive}
	svc := NewService(NewStore(), gate)
	ctx := context.Background()

	if _, err := svc.RequestBill(ctx, BillRequest{Token: "dead"}); err == nil {
		t.Error("bill request with an inactive token accepted")
	}
	if _, err := svc.RequestBill(ctx, BillRequest{}); err == nil {
		t.Error("bill request without a token accepted")
	}
}

func TestPostValidation(t *testing.T) {
	svc := NewService(NewStore(), &fakeGate{})
	ctx := context.Background()

	if _, err := svc.Post(ctx, Notification{Channel: ChannelKitchen}); err == nil {
		t.Error("post without restaurant accepted")
	}
	if _, err := svc.Post(ctx, Notification{RestaurantID: "r1", Channel: Channel("pigeon")}); err == nil {
		t.Error("post to unknown channel accepted")
	}
	if _, err := svc.Post(ctx, Notification{RestaurantID: "r1", Channel: ChannelKitchen, Kind: KindTableTransfer, Message: fmt.Sprintf("Table %d moved to %d", 3, 7)}); err != nil {
		t.Errorf("valid post rejected: %v", err)
	}
}
