// Package units konversi antara base unit stok dan selling unit kemasan.
// Murni hitung, tanpa I/O; fallback 1:1 untuk pasangan satuan yang tidak
// terdaftar dicatat sebagai warning.
package units

import (
	"math"

	"go.uber.org/zap"
)

// factors[selling][base] = pengali dari satuan jual ke satuan stok.
// Pasangan yang tidak ada di tabel dianggap 1:1 (lihat Fallback di bawah).
var factors = map[string]map[string]float64{
	"gm":    {"kg": 1.0 / 1000},
	"kg":    {"gm": 1000},
	"ml":    {"ltr": 1.0 / 1000},
	"ltr":   {"ml": 1000},
	"dozen": {"piece": 12},
}

var log = zap.NewNop()

// SetLogger pasang logger untuk warning fallback. Default no-op.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// ToBaseUnit konversi qty terjual (dalam kemasan jual) ke base unit stok.
// soldQuantity = jumlah kemasan, sellPerUnitQty = isi per kemasan dalam
// sellingUnit. Contoh: 2 kemasan x 500 gm, base kg => 1.
func ToBaseUnit(soldQuantity float64, sellingUnit string, sellPerUnitQty float64, baseUnit string) float64 {
	raw := soldQuantity * sellPerUnitQty
	if sellingUnit == baseUnit {
		return raw
	}
	if f, ok := factors[sellingUnit][baseUnit]; ok {
		return raw * f
	}
	// Fallback 1:1 untuk pasangan tak dikenal. Berbahaya untuk satuan yang
	// sebenarnya butuh konversi, makanya selalu di-log.
	log.Warn("konversi satuan tidak dikenal, pakai 1:1",
		zap.String("selling_unit", sellingUnit),
		zap.String("base_unit", baseUnit))
	return raw
}

// MaxCartableQuantity jumlah kemasan utuh maksimum yang bisa masuk keranjang
// dari stok saleable (base unit). Kemasan tidak bisa dipecah, jadi floor.
func MaxCartableQuantity(saleableBase float64, baseUnit, sellingUnit string, sellPerUnitQty float64) int64 {
	if sellPerUnitQty <= 0 {
		return 0
	}
	inSelling := saleableBase
	if baseUnit != sellingUnit {
		if f, ok := factors[sellingUnit][baseUnit]; ok && f != 0 {
			inSelling = saleableBase / f
		} else {
			log.Warn("konversi satuan tidak dikenal, pakai 1:1",
				zap.String("selling_unit", sellingUnit),
				zap.String("base_unit", baseUnit))
		}
	}
	n := math.Floor(inSelling / sellPerUnitQty)
	if n < 0 {
		return 0
	}
	return int64(n)
}
