// models/sales_order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryConfirmed DeliveryStatus = "Confirmed"
	DeliveryPacking   DeliveryStatus = "Packing"
	DeliveryInTransit DeliveryStatus = "In Transit"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryCancelled DeliveryStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentPaid          PaymentStatus = "Paid"
)

// deliveryRank urutan linear Confirmed -> Packing -> In Transit -> Delivered.
var deliveryRank = map[DeliveryStatus]int{
	DeliveryConfirmed: 0,
	DeliveryPacking:   1,
	DeliveryInTransit: 2,
	DeliveryDelivered: 3,
}

// ValidDeliveryStatus cek nilai status dari request.
func ValidDeliveryStatus(s DeliveryStatus) bool {
	if s == DeliveryCancelled {
		return true
	}
	_, ok := deliveryRank[s]
	return ok
}

// IsTerminalDelivery: Delivered dan Cancelled tidak boleh transisi lagi.
func IsTerminalDelivery(s DeliveryStatus) bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// CanTransitionDelivery aturan state machine pengiriman:
// maju satu tahap di jalur linear, atau Cancelled dari state non-terminal.
func CanTransitionDelivery(from, to DeliveryStatus) error {
	if IsTerminalDelivery(from) {
		return ErrAlreadyFinalState
	}
	if to == DeliveryCancelled {
		return nil
	}
	fr, ok1 := deliveryRank[from]
	tr, ok2 := deliveryRank[to]
	if !ok1 || !ok2 || tr != fr+1 {
		return ErrInvalidTransition
	}
	return nil
}

// SalesOrder = satu checkout. Dibuat atomik bersama Items dan Invoice-nya.
type SalesOrder struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`
	Customer       Customer       `json:"customer"`
	CustomerName   string         `gorm:"size:200;not null" json:"customer_name"` // snapshot
	PaymentMethod  string         `gorm:"size:20;not null" json:"payment_method"`
	DeliveryStatus DeliveryStatus `gorm:"size:20;index;not null" json:"delivery_status"`
	PaymentStatus  PaymentStatus  `gorm:"size:20;not null" json:"payment_status"`
	PaymentDate    *time.Time     `json:"payment_date"`

	Items   []SalesOrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Invoice *Invoice         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"invoice,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SalesOrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	SalesOrderID uint    `gorm:"index;not null" json:"sales_order_id"`
	ProductID    uint    `gorm:"not null" json:"product_id"`
	Product      Product `json:"product"`

	SoldQuantity float64         `gorm:"not null" json:"sold_quantity"` // dalam selling unit
	SoldPrice    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sold_price"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"line_total"`

	// qty base unit yang dipotong dari stok saat checkout; dipakai apa adanya
	// saat restore pembatalan supaya round-trip persis.
	BaseUnitQuantity float64 `gorm:"not null" json:"base_unit_quantity"`
}
