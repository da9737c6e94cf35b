package models

import "gorm.io/gorm"

// Stock 1:1 dengan Product, semua qty dalam base unit.
// Invariant: total = AvailableQuantity + SaleableQuantity hanya boleh berubah
// lewat penerimaan pembelian; realokasi cuma memindahkan antar bucket.
type Stock struct {
	gorm.Model
	ProductID         uint    `json:"product_id" gorm:"uniqueIndex;not null"`
	Product           Product `json:"product"`
	AvailableQuantity float64 `json:"available_quantity" gorm:"not null;default:0"`
	SaleableQuantity  float64 `json:"saleable_quantity" gorm:"not null;default:0"`
}

// ConservationTolerance toleransi pembulatan float saat cek konservasi realokasi.
const ConservationTolerance = 0.01

// ConservesTotal cek apakah realokasi (newAvailable, newSaleable) mempertahankan
// total stok terhadap kondisi sekarang.
func (s Stock) ConservesTotal(newAvailable, newSaleable float64) bool {
	diff := (newAvailable + newSaleable) - (s.AvailableQuantity + s.SaleableQuantity)
	if diff < 0 {
		diff = -diff
	}
	return diff <= ConservationTolerance
}
