// Package events event domain hasil commit (order baru, perubahan status).
// Coordinator mengembalikan event setelah commit; dispatcher channel yang
// meneruskan ke kolaborator notifikasi — bukan callback inline di dalam
// transaksi.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeNewOrder           = "new_order"
	TypeOrderStatusUpdated = "order_status_updated"
)

type EventItem struct {
	ProductID uint    `json:"product_id"`
	Nama      string  `json:"nama"`
	Quantity  float64 `json:"quantity"`
}

type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	OrderID     uint            `json:"order_id"`
	CustomerID  uint            `json:"customer_id"`
	Status      string          `json:"status,omitempty"`
	Items       []EventItem     `json:"items,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func NewOrderEvent(orderID, customerID uint, items []EventItem, total decimal.Decimal) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        TypeNewOrder,
		OrderID:     orderID,
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		OccurredAt:  time.Now().UTC(),
	}
}

func StatusUpdatedEvent(orderID, customerID uint, status string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeOrderStatusUpdated,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}
