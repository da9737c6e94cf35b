package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product adalah master barang. BaseUnit = satuan stok fisik (kg, ltr, dozen,
// piece), SellingUnit = satuan kemasan jual (gm, ml, piece). SellPerUnitQty =
// isi satu kemasan jual dalam SellingUnit.
type Product struct {
	gorm.Model
	Kode           string          `json:"kode" gorm:"uniqueIndex;size:64;not null"`
	Nama           string          `json:"nama" gorm:"size:200;not null"`
	BaseUnit       string          `json:"base_unit" gorm:"size:16;not null"`
	SellingUnit    string          `json:"selling_unit" gorm:"size:16;not null"`
	SellPerUnitQty float64         `json:"sell_per_unit_qty" gorm:"not null;default:1"`
	HargaBeli      decimal.Decimal `json:"harga_beli" gorm:"type:decimal(20,2);not null;default:0"`
	HargaJual      decimal.Decimal `json:"harga_jual" gorm:"type:decimal(20,2);not null;default:0"`
	Deskripsi      string          `json:"deskripsi" gorm:"size:500"`

	Stock *Stock `json:"stock,omitempty"`
}
