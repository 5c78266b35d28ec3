package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GroupedOrder is the kitchen view's synthetic merge of every order a table
// has placed: one card per table, while the underlying records stay
// individually updatable.
type GroupedOrder struct {
	ID          string       `json:"id"` // table-{n}-grouped
	TableNumber int          `json:"table_number"`
	OrderIDs    []uuid.UUID  `json:"order_ids"`
	Items       []*OrderItem `json:"items"`
	Status      Status       `json:"status"`
	TotalAmount float64      `json:"total_amount"`
	CreatedAt   time.Time    `json:"created_at"` // earliest member order
}

// statusPriority ranks which member status a grouped card shows. Lower is
// more urgent: a table with one pending and one preparing order shows as
// pending.
var statusPriority = map[Status]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusDelivered: 3,
	StatusCompleted: 4,
	StatusPaid:      5,
	StatusCancelled: 6,
}

// GroupByTable merges orders sharing a table number into synthetic grouped
// orders. Item counts and revenue are preserved: the sum of grouped totals
// equals the sum of the underlying orders' totals.
func GroupByTable(orders []*Order) []*GroupedOrder {
	byTable := make(map[int][]*Order)
	var tables []int
	for _, o := range orders {
		if _, seen := byTable[o.TableNumber]; !seen {
			tables = append(tables, o.TableNumber)
		}
		byTable[o.TableNumber] = append(byTable[o.TableNumber], o)
	}

	groups := make([]*GroupedOrder, 0, len(tables))
	for _, table := range tables {
		groups = append(groups, newGroupedOrder(table, byTable[table]))
	}
	return groups
}

func newGroupedOrder(tableNumber int, members []*Order) *GroupedOrder {
	g := &GroupedOrder{
		ID:          fmt.Sprintf("table-%d-grouped", tableNumber),
		TableNumber: tableNumber,
	}
	for _, o := range members {
		g.OrderIDs = append(g.OrderIDs, o.ID)
		g.Items = append(g.Items, o.Items...)
		g.TotalAmount += o.TotalAmount
		if g.CreatedAt.IsZero() || o.CreatedAt.Before(g.CreatedAt) {
			g.CreatedAt = o.CreatedAt
		}
		if g.Status == "" || statusPriority[o.Status] < statusPriority[g.Status] {
			g.Status = o.Status
		}
	}
	return g
}
