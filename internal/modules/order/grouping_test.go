package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testOrder(table int, status Status, total float64, created time.Time, itemCount int) *Order {
	o := &Order{
		ID:          uuid.New(),
		TableNumber: table,
		Status:      status,
		TotalAmount: total,
		CreatedAt:   created,
	}
	for i := 0; i < itemCount; i++ {
		o.Items = append(o.Items, &OrderItem{ID: uuid.New(), OrderID: o.ID, Quantity: 1})
	}
	return o
}

func TestGroupByTable(t *testing.T) {
	base := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	orders := []*Order{
		testOrder(5, StatusPreparing, 120, base.Add(10*time.Minute), 2),
		testOrder(3, StatusReady, 80, base, 1),
		testOrder(5, StatusPending, 40, base.Add(20*time.Minute), 1),
		testOrder(3, StatusReady, 60, base.Add(5*time.Minute), 3),
	}

	groups := GroupByTable(orders)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Tables keep first-seen order: table 5 then table 3.
	if groups[0].TableNumber != 5 || groups[1].TableNumber != 3 {
		t.Fatalf("table order = %d,%d, want 5,3", groups[0].TableNumber, groups[1].TableNumber)
	}

	t5 := groups[0]
	if t5.ID != "table-5-grouped" {
		t.Errorf("group ID = %q, want table-5-grouped", t5.ID)
	}
	if t5.Status != StatusPending {
		t.Errorf("table 5 status = %s, want pending (most urgent member)", t5.Status)
	}
	if t5.TotalAmount != 160 {
		t.Errorf("table 5 total = %v, want 160", t5.TotalAmount)
	}
	if len(t5.Items) != 3 {
		t.Errorf("table 5 item count = %d, want 3", len(t5.Items))
	}
	if !t5.CreatedAt.Equal(base.Add(10 * time.Minute)) {
		t.Errorf("table 5 created = %v, want earliest member time", t5.CreatedAt)
	}
	if len(t5.OrderIDs) != 2 {
		t.Errorf("table 5 member count = %d, want 2", len(t5.OrderIDs))
	}

	// Counts and revenue survive the merge.
	var groupedTotal float64
	groupedItems := 0
	for _, g := range groups {
		groupedTotal += g.TotalAmount
		groupedItems += len(g.Items)
	}
	var rawTotal float64
	rawItems := 0
	for _, o := range orders {
		rawTotal += o.TotalAmount
		rawItems += len(o.Items)
	}
	if groupedTotal != rawTotal {
		t.Errorf("grouped revenue %v != raw revenue %v", groupedTotal, rawTotal)
	}
	if groupedItems != rawItems {
		t.Errorf("grouped item count %d != raw item count %d", groupedItems, rawItems)
	}
}

func TestGroupByTableEmpty(t *testing.T) {
	if groups := GroupByTable(nil); len(groups) != 0 {
		t.Errorf("grouping no orders produced %d groups", len(groups))
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		role Role
		from Status
		to   Status
		want bool
	}{
		{"kitchenStartsPreparing", RoleKitchen, StatusPending, StatusPreparing, true},
		{"kitchenMarksReady", RoleKitchen, StatusPreparing, StatusReady, true},
		{"kitchenCannotSettle", RoleKitchen, StatusReady, StatusPaid, false},
		{"kitchenCannotCancel", RoleKitchen, StatusPending, StatusCancelled, false},
		{"cashierSettlesReady", RoleCashier, StatusReady, StatusPaid, true},
		{"cashierSettlesPendingBillRequest", RoleCashier, StatusPending, StatusPaid, true},
		{"cashierCannotCook", RoleCashier, StatusPending, StatusPreparing, false},
		{"waiterDelivers", RoleWaiter, StatusReady, StatusDelivered, true},
		{"waiterCompletes", RoleWaiter, StatusReady, StatusCompleted, true},
		{"waiterCancelsPending", RoleWaiter, StatusPending, StatusCancelled, true},
		{"waiterCannotSettle", RoleWaiter, StatusCompleted, StatusPaid, false},
		{"managerSettlesCompleted", RoleManager, StatusCompleted, StatusPaid, true},
		{"noBackwardMoves", RoleManager, StatusReady, StatusPending, false},
		{"paidIsTerminal", RoleManager, StatusPaid, StatusPending, false},
		{"cancelledIsTerminal", RoleManager, StatusCancelled, StatusPending, false},
		{"unknownRole", Role("customer"), StatusPending, StatusPreparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.role, tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s, %s) = %v, want %v",
					tt.role, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusDelivered} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusPaid, StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
}
