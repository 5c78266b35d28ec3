package notify

import "time"

// Channel identifies which staff panel a notification is addressed to.
type Channel string

const (
	ChannelCashier Channel = "cashier"
	ChannelKitchen Channel = "kitchen"
)

// Kind identifies the notification payload.
type Kind string

const (
	KindBillRequest      Kind = "bill_request"
	KindNewOrder         Kind = "new_order"
	KindPaymentCompleted Kind = "payment_completed"
	KindTableTransfer    Kind = "table_transfer"
)

// Notification is one mailbox entry. Entries stay listable until a consumer
// acknowledges them, so a panel that reconnects still sees pending requests.
type Notification struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableNumber  int       `json:"table_number"`
	Channel      Channel   `json:"channel"`
	Kind         Kind      `json:"kind"`
	Message      string    `json:"message"`
	Acked        bool      `json:"acked"`
	CreatedAt    time.Time `json:"created_at"`
}

// BillRequest is the customer-facing request body.
type BillRequest struct {
	Token string `json:"token"`
}

func validChannel(c Channel) bool {
	return c == ChannelCashier || c == ChannelKitchen
}
