package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a table's shared cart. Name and price are carried
// denormalized so every device renders the same snapshot regardless of later
// menu edits.
type CartItem struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Notes    string    `json:"notes,omitempty"`
}

// Session is the shared cart state for one restaurant table under one QR
// token. Every device scanning the same QR joins the same session and
// converges to the last written cart.
type Session struct {
	Key          string               `json:"session_key"`
	RestaurantID uuid.UUID            `json:"restaurant_id"`
	TableNumber  int                  `json:"table_number"`
	Token        string               `json:"token"`
	Cart         []CartItem           `json:"cart"`
	Version      int64                `json:"version"`
	Clients      map[string]time.Time `json:"-"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Key derives the session key shared by all devices at one table.
func Key(restaurantID uuid.UUID, tableNumber int, token string) string {
	return fmt.Sprintf("%s:%d:%s", restaurantID, tableNumber, token)
}

// ── Request/Response DTOs ─────────────────────────────────────────────────────

// JoinRequest is the payload for entering a table session. ClientID, when
// present, rejoins a previously issued identity instead of minting a new one.
type JoinRequest struct {
	RestaurantID string `json:"restaurant_id"`
	TableNumber  int    `json:"table_number"`
	Token        string `json:"token"`
	ClientID     string `json:"client_id,omitempty"`
}

// Snapshot is what pollers and joiners receive: the current cart, its version
// and how many devices are live at the table.
type Snapshot struct {
	SessionKey  string     `json:"session_key"`
	ClientID    string     `json:"client_id,omitempty"`
	Cart        []CartItem `json:"cart"`
	Version     int64      `json:"version"`
	ActiveUsers int        `json:"active_users_count"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UpdateCartRequest replaces the session cart wholesale. Last write wins.
type UpdateCartRequest struct {
	ClientID string     `json:"client_id"`
	Cart     []CartItem `json:"cart"`
}

// LeaveRequest removes a device from the session.
type LeaveRequest struct {
	ClientID string `json:"client_id"`
}

// ── cart comparison ───────────────────────────────────────────────────────────

// NormalizeCart returns a copy sorted by item id, name, price and quantity so
// two carts compare order-independently.
func NormalizeCart(cart []CartItem) []CartItem {
	out := make([]CartItem, len(cart))
	copy(out, cart)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ItemID != b.ItemID {
			return a.ItemID.String() < b.ItemID.String()
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.Quantity < b.Quantity
	})
	return out
}

// CartsEqual reports whether two carts hold the same items regardless of
// order. Notes are ignored: the synchronizer only diffs on id, name, price
// and quantity.
func CartsEqual(a, b []CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	na, nb := NormalizeCart(a), NormalizeCart(b)
	for i := range na {
		if na[i].ItemID != nb[i].ItemID || na[i].Name != nb[i].Name ||
			na[i].Price != nb[i].Price || na[i].Quantity != nb[i].Quantity {
			return false
		}
	}
	return true
}
