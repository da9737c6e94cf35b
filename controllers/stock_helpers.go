// controllers/stock_helpers.go
//
// Ledger stok: satu-satunya pintu mutasi available/saleable quantity.
// Semua fungsi di sini jalan di dalam transaksi milik pemanggil; invariant
// yang dilanggar mengembalikan error domain supaya transaksi di-rollback utuh.
package controllers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-postgres-orders/models"
)

// receivePurchase upsert baris stok, tambah ke available_quantity.
// Ini satu-satunya operasi yang menaikkan total stok.
func receivePurchase(tx *gorm.DB, productID uint, qtyBaseUnits float64) error {
	if qtyBaseUnits <= 0 {
		return fmt.Errorf("%w: qty penerimaan %v", models.ErrInvalidPriceOrQuantity, qtyBaseUnits)
	}
	stock := models.Stock{
		ProductID:         productID,
		AvailableQuantity: qtyBaseUnits,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_quantity": gorm.Expr("stocks.available_quantity + ?", qtyBaseUnits),
		}),
	}).Create(&stock).Error
}

// deductForSale potong saleable_quantity secara kondisional: update hanya kena
// kalau saleable_quantity >= qty, jadi dua checkout bersamaan tidak pernah
// sama-sama lolos melebihi stok. Tanpa read-then-write.
func deductForSale(tx *gorm.DB, productID uint, qtyBaseUnits float64) error {
	if qtyBaseUnits <= 0 {
		return fmt.Errorf("%w: qty deduksi %v", models.ErrInvalidPriceOrQuantity, qtyBaseUnits)
	}
	res := tx.Model(&models.Stock{}).
		Where("product_id = ? AND saleable_quantity >= ?", productID, qtyBaseUnits).
		UpdateColumn("saleable_quantity", gorm.Expr("saleable_quantity - ?", qtyBaseUnits))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// bedakan stok kurang vs produk tanpa baris stok
		var cnt int64
		if err := tx.Model(&models.Stock{}).Where("product_id = ?", productID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return fmt.Errorf("%w: product_id=%d belum punya stok", models.ErrInsufficientStock, productID)
		}
		return fmt.Errorf("%w: product_id=%d butuh %v", models.ErrInsufficientStock, productID, qtyBaseUnits)
	}
	return nil
}

// restoreForCancellation kembalikan qty hasil deduksi sebelumnya ke saleable.
func restoreForCancellation(tx *gorm.DB, productID uint, qtyBaseUnits float64) error {
	if qtyBaseUnits <= 0 {
		return nil
	}
	res := tx.Model(&models.Stock{}).
		Where("product_id = ?", productID).
		UpdateColumn("saleable_quantity", gorm.Expr("saleable_quantity + ?", qtyBaseUnits))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stok product_id=%d", models.ErrNotFound, productID)
	}
	return nil
}

// StockReallocation satu baris permintaan realokasi batch.
type StockReallocation struct {
	ProductID         uint    `json:"product_id" binding:"required"`
	AvailableQuantity float64 `json:"available_quantity"`
	SaleableQuantity  float64 `json:"saleable_quantity"`
}

// reallocateStocks pindahkan qty antar bucket untuk banyak produk sekaligus.
// Tiap baris dicek konservasi total (toleransi pembulatan 0.01); satu baris
// gagal berarti seluruh batch batal.
func reallocateStocks(tx *gorm.DB, updates []StockReallocation) error {
	for _, u := range updates {
		if u.AvailableQuantity < 0 || u.SaleableQuantity < 0 {
			return fmt.Errorf("%w: product_id=%d qty negatif", models.ErrInvalidPriceOrQuantity, u.ProductID)
		}
		var s models.Stock
		if err := tx.Clauses(clauseUpdateLock()).
			Where("product_id = ?", u.ProductID).
			First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: stok product_id=%d", models.ErrNotFound, u.ProductID)
			}
			return err
		}
		if !s.ConservesTotal(u.AvailableQuantity, u.SaleableQuantity) {
			return fmt.Errorf("%w: product_id=%d (%v+%v != %v+%v)",
				models.ErrConservationViolation, u.ProductID,
				u.AvailableQuantity, u.SaleableQuantity,
				s.AvailableQuantity, s.SaleableQuantity)
		}
		if err := tx.Model(&models.Stock{}).
			Where("product_id = ?", u.ProductID).
			Updates(map[string]interface{}{
				"available_quantity": u.AvailableQuantity,
				"saleable_quantity":  u.SaleableQuantity,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}
