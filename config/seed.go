package config

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-postgres-orders/models"
)

// SeedDemo isi data contoh untuk development (produk + stok + staf).
// Idempotent: skip baris yang sudah ada.
func SeedDemo(db *gorm.DB) {
	products := []struct {
		p     models.Product
		avail float64
		sale  float64
	}{
		{models.Product{Kode: "BRS-001", Nama: "Beras Premium", BaseUnit: "kg", SellingUnit: "gm", SellPerUnitQty: 500,
			HargaBeli: decimal.NewFromInt(9), HargaJual: decimal.NewFromInt(12)}, 20, 80},
		{models.Product{Kode: "SUS-001", Nama: "Susu Segar", BaseUnit: "ltr", SellingUnit: "ml", SellPerUnitQty: 250,
			HargaBeli: decimal.NewFromInt(4), HargaJual: decimal.NewFromInt(6)}, 10, 40},
		{models.Product{Kode: "TLR-001", Nama: "Telur Ayam", BaseUnit: "piece", SellingUnit: "dozen", SellPerUnitQty: 1,
			HargaBeli: decimal.NewFromInt(20), HargaJual: decimal.NewFromInt(26)}, 24, 120},
	}

	for _, row := range products {
		var cnt int64
		db.Model(&models.Product{}).Where("kode = ?", row.p.Kode).Count(&cnt)
		if cnt != 0 {
			continue
		}
		p := row.p
		if err := db.Create(&p).Error; err != nil {
			continue
		}
		db.Create(&models.Stock{
			ProductID:         p.ID,
			AvailableQuantity: row.avail,
			SaleableQuantity:  row.sale,
		})
	}

	var cnt int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&cnt)
	if cnt == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&models.User{
				Username:     "admin",
				FullName:     "Administrator",
				PasswordHash: string(hash),
				IsActive:     true,
			})
		}
	}
}
