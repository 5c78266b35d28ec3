package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(now *time.Time) *Store {
	s := NewStore()
	s.now = func() time.Time { return *now }
	return s
}

func TestStoreLastWriteWins(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	rid := uuid.New()

	key := Key(rid, 5, "tok")
	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 5, Token: "tok"}, "phone-a")
	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 5, Token: "tok"}, "phone-b")

	itemID := uuid.New()
	cartA := []CartItem{{ItemID: itemID, Name: "Ayran", Price: 15, Quantity: 1}}
	cartB := []CartItem{{ItemID: itemID, Name: "Ayran", Price: 15, Quantity: 3}}

	if _, ok := store.ReplaceCart(key, "phone-a", cartA); !ok {
		t.Fatal("ReplaceCart on existing session returned ok=false")
	}
	snap, ok := store.ReplaceCart(key, "phone-b", cartB)
	if !ok {
		t.Fatal("ReplaceCart on existing session returned ok=false")
	}

	if !CartsEqual(snap.Cart, cartB) {
		t.Errorf("cart after second write = %+v, want the later write %+v", snap.Cart, cartB)
	}
	if snap.Version != 2 {
		t.Errorf("version = %d, want 2 after two writes", snap.Version)
	}

	got, ok := store.Get(key, "phone-a")
	if !ok {
		t.Fatal("session disappeared")
	}
	if !CartsEqual(got.Cart, cartB) {
		t.Errorf("phone-a sees %+v, want converged cart %+v", got.Cart, cartB)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	rid := uuid.New()
	key := Key(rid, 1, "tok")

	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 1, Token: "tok"}, "c1")
	store.ReplaceCart(key, "c1", []CartItem{{ItemID: uuid.New(), Name: "Tea", Price: 5, Quantity: 1}})

	snap, _ := store.Get(key, "c1")
	snap.Cart[0].Quantity = 99

	fresh, _ := store.Get(key, "c1")
	if fresh.Cart[0].Quantity == 99 {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestStoreActiveUsersAndLeave(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	rid := uuid.New()
	key := Key(rid, 2, "tok")

	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 2, Token: "tok"}, "c1")
	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 2, Token: "tok"}, "c2")
	if got := store.ActiveUsers(key); got != 2 {
		t.Errorf("ActiveUsers = %d, want 2", got)
	}

	// c2 goes silent past the liveness window; a poll from c1 keeps it fresh.
	now = now.Add(clientTTL + time.Second)
	store.Get(key, "c1")
	if got := store.ActiveUsers(key); got != 1 {
		t.Errorf("ActiveUsers after c2 idle = %d, want 1", got)
	}

	store.Leave(key, "c1")
	store.Leave(key, "c2")
	if _, ok := store.Get(key, ""); ok {
		t.Error("session should be dropped when the last client leaves")
	}
}

func TestStoreIgnoresUnknownClients(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	rid := uuid.New()
	key := Key(rid, 6, "tok")

	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 6, Token: "tok"}, "c1")

	// Polls and cart writes with a fabricated ID must not register it as a
	// client; only join does that.
	store.Get(key, "ghost")
	store.ReplaceCart(key, "ghost", []CartItem{{ItemID: uuid.New(), Name: "Tea", Price: 5, Quantity: 1}})
	if got := store.ActiveUsers(key); got != 1 {
		t.Errorf("ActiveUsers = %d, want 1 after unknown-client poll and write", got)
	}

	// The ghost must not keep itself alive by polling across the window.
	now = now.Add(clientTTL + time.Second)
	store.Get(key, "ghost")
	store.Get(key, "c1")
	snap, _ := store.Get(key, "")
	if _, ok := snap.Clients["ghost"]; ok {
		t.Error("fabricated client ID ended up in the session roster")
	}
	if got := store.ActiveUsers(key); got != 1 {
		t.Errorf("ActiveUsers = %d, want only the joined client", got)
	}
}

func TestStoreSweep(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	rid := uuid.New()
	key := Key(rid, 3, "tok")

	store.JoinClient(key, Session{RestaurantID: rid, TableNumber: 3, Token: "tok"}, "c1")

	now = now.Add(clientTTL + time.Second)
	if reaped := store.Sweep(); reaped != 0 {
		t.Errorf("session swept too early, reaped = %d", reaped)
	}

	now = now.Add(sessionTTL)
	if reaped := store.Sweep(); reaped != 1 {
		t.Errorf("reaped = %d, want 1 after session TTL", reaped)
	}
	if _, ok := store.Get(key, ""); ok {
		t.Error("swept session still retrievable")
	}
}

func TestCartsEqual(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name  string
		left  []CartItem
		right []CartItem
		want  bool
	}{
		{
			name:  "sameItemsDifferentOrder",
			left:  []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 1}, {ItemID: b, Name: "Cola", Price: 20, Quantity: 2}},
			right: []CartItem{{ItemID: b, Name: "Cola", Price: 20, Quantity: 2}, {ItemID: a, Name: "Kebab", Price: 120, Quantity: 1}},
			want:  true,
		},
		{
			name:  "differentQuantity",
			left:  []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 1}},
			right: []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 2}},
			want:  false,
		},
		{
			name:  "notesIgnored",
			left:  []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 1, Notes: "no onions"}},
			right: []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 1}},
			want:  true,
		},
		{
			name:  "differentLength",
			left:  []CartItem{{ItemID: a, Name: "Kebab", Price: 120, Quantity: 1}},
			right: nil,
			want:  false,
		},
		{
			name:  "bothEmpty",
			left:  nil,
			right: []CartItem{},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CartsEqual(tt.left, tt.right); got != tt.want {
				t.Errorf("CartsEqual = %v, want %v", got, tt.want)
			}
		})
	}
}
