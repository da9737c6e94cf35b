// models/purchase_order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder penerimaan barang dari supplier. Satu-satunya jalur yang
// menaikkan total stok (masuk ke available_quantity, dalam base unit).
type PurchaseOrder struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SupplierName string    `gorm:"size:200;not null" json:"supplier_name"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`

	Items []PurchaseOrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint    `gorm:"index;not null" json:"purchase_order_id"`
	ProductID       uint    `gorm:"not null" json:"product_id"`
	Product         Product `json:"product"`

	Quantity float64         `gorm:"not null" json:"quantity"` // base unit
	BuyPrice decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"buy_price"`
}
