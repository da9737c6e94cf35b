// models/invoice.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceUpcoming      InvoiceStatus = "Upcoming"
	InvoicePartiallyPaid InvoiceStatus = "Partially Paid"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoiceOverdue       InvoiceStatus = "Overdue"
)

// Invoice 1:1 dengan SalesOrder, selalu dibuat dalam transaksi yang sama.
// InvoiceNo sekuensial, di-assign sekali saat create, immutable.
type Invoice struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	InvoiceNo    string `gorm:"uniqueIndex;size:40;not null" json:"invoice_no"`
	SalesOrderID uint   `gorm:"uniqueIndex;not null" json:"sales_order_id"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	DeliveryCharges decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_charges"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_amount"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"amount_paid"`

	InvoiceStatus InvoiceStatus `gorm:"size:20;index;not null" json:"invoice_status"`
	InvoiceDate   time.Time     `gorm:"not null" json:"invoice_date"`
	DueDate       time.Time     `gorm:"index;not null" json:"due_date"`

	Payments []InvoicePayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusAfterPayment status invoice setelah akumulasi pembayaran.
func StatusAfterPayment(amountPaid, totalAmount decimal.Decimal) InvoiceStatus {
	if amountPaid.GreaterThanOrEqual(totalAmount) {
		return InvoicePaid
	}
	return InvoicePartiallyPaid
}

// PaymentStatusFor label payment_status order yang mengikuti status invoice.
func PaymentStatusFor(s InvoiceStatus) PaymentStatus {
	if s == InvoicePaid {
		return PaymentPaid
	}
	return PaymentPartiallyPaid
}

// InvoicePayment jurnal per pembayaran masuk (append-only).
type InvoicePayment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20" json:"payment_method"`
	ReceivedAt    time.Time       `gorm:"not null" json:"received_at"`

	CreatedAt time.Time `json:"created_at"`
}
