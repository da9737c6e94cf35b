package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBaseUnit(t *testing.T) {
	cases := []struct {
		name           string
		soldQty        float64
		sellingUnit    string
		sellPerUnitQty float64
		baseUnit       string
		want           float64
	}{
		{"gm ke kg", 2, "gm", 500, "kg", 1},
		{"gm ke kg pecahan", 1, "gm", 250, "kg", 0.25},
		{"kg ke gm", 1, "kg", 2, "gm", 2000},
		{"ml ke ltr", 4, "ml", 250, "ltr", 1},
		{"ltr ke ml", 1, "ltr", 1.5, "ml", 1500},
		{"dozen ke piece", 2, "dozen", 1, "piece", 24},
		{"identitas piece", 3, "piece", 1, "piece", 3},
		{"identitas kg", 2, "kg", 5, "kg", 10},
		// pasangan tak terdaftar -> fallback 1:1
		{"piece ke dozen fallback", 1, "piece", 12, "dozen", 12},
		{"satuan asing fallback", 2, "sack", 10, "kg", 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToBaseUnit(tc.soldQty, tc.sellingUnit, tc.sellPerUnitQty, tc.baseUnit)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestMaxCartableQuantity(t *testing.T) {
	cases := []struct {
		name           string
		saleableBase   float64
		baseUnit       string
		sellingUnit    string
		sellPerUnitQty float64
		want           int64
	}{
		{"kg stok, jual 500gm", 1, "kg", "gm", 500, 2},
		{"kg stok, jual 400gm floor", 1, "kg", "gm", 400, 2},
		{"ltr stok, jual 250ml", 2, "ltr", "ml", 250, 8},
		{"piece stok, jual dozen", 30, "piece", "dozen", 1, 2},
		{"identitas", 10, "piece", "piece", 1, 10},
		{"stok nol", 0, "kg", "gm", 500, 0},
		{"sell per unit nol", 5, "kg", "gm", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaxCartableQuantity(tc.saleableBase, tc.baseUnit, tc.sellingUnit, tc.sellPerUnitQty))
		})
	}
}

func TestDeductRestoreRoundTrip(t *testing.T) {
	// restore pembatalan memakai hasil konversi yang sama dengan deduksi,
	// jadi round-trip harus persis.
	deducted := ToBaseUnit(3, "gm", 500, "kg")
	assert.InDelta(t, 1.5, deducted, 1e-9)

	stok := 10.0
	after := stok - deducted
	restored := after + deducted
	assert.InDelta(t, stok, restored, 1e-9)
}
