// utils/invoice_code.go
package utils

import (
	"fmt"
	"time"
)

// GenInvoiceCode nomor invoice sekuensial, immutable setelah dibuat.
func GenInvoiceCode(seq int64, t time.Time) string {
	return fmt.Sprintf("INV-%d-%06d", t.Year(), seq)
}
