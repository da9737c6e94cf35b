// models/errors.go
package models

import "errors"

// Sentinel error domain — dicek pakai errors.Is di boundary controller.
var (
	ErrEmptyCart              = errors.New("keranjang kosong")
	ErrProductNotFound        = errors.New("produk tidak ditemukan")
	ErrInvalidPriceOrQuantity = errors.New("harga atau qty tidak valid")
	ErrInsufficientStock      = errors.New("stok tidak cukup")
	ErrInvalidTransition      = errors.New("transisi status tidak valid")
	ErrAlreadyFinalState      = errors.New("status sudah final")
	ErrAlreadyPaid            = errors.New("invoice sudah lunas")
	ErrNotFound               = errors.New("data tidak ditemukan")
	ErrConservationViolation  = errors.New("total stok berubah saat realokasi")
)
