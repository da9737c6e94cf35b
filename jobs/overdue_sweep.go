// Package jobs proses background periodik.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-postgres-orders/models"
)

// SweepOverdueInvoices satu putaran sweep: semua invoice Upcoming/Partially
// Paid yang lewat jatuh tempo dipindah ke Overdue. Set-based dan idempotent —
// dijalankan ulang tanpa perubahan baru tidak berefek apa-apa.
func SweepOverdueInvoices(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&models.Invoice{}).
		Where("invoice_status IN ? AND due_date < ?",
			[]models.InvoiceStatus{models.InvoiceUpcoming, models.InvoicePartiallyPaid}, now).
		Update("invoice_status", models.InvoiceOverdue)
	return res.RowsAffected, res.Error
}

// StartOverdueSweep jalankan sweep tiap interval sampai ctx selesai.
// Sweep gagal cuma di-log; tick berikutnya mencoba lagi dengan sendirinya.
func StartOverdueSweep(ctx context.Context, db *gorm.DB, log *zap.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("sweep invoice overdue aktif", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			log.Info("sweep invoice overdue berhenti")
			return
		case <-ticker.C:
			n, err := SweepOverdueInvoices(db, time.Now().UTC())
			if err != nil {
				log.Error("sweep invoice overdue gagal", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("invoice dipindah ke Overdue", zap.Int64("rows", n))
			}
		}
	}
}
