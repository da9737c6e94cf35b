// controllers/payment_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-postgres-orders/models"
	"go-postgres-orders/utils"
)

type PaymentInput struct {
	AmountPaidNow decimal.Decimal `json:"amount_paid_now" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
}

// RecordPayment akumulasi pembayaran parsial pada invoice. Lock invoice,
// tolak kalau sudah Paid, lalu satu transaksi update invoice + order +
// append jurnal pembayaran.
func (h *Controller) RecordPayment(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}

	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}
	if !in.AmountPaidNow.IsPositive() {
		h.respondDomainError(c, fmt.Errorf("%w: amount_paid_now", models.ErrInvalidPriceOrQuantity), "Gagal mencatat pembayaran")
		return
	}

	var inv models.Invoice
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).First(&inv, uint(id64)).Error; err != nil {
			return err
		}
		if inv.InvoiceStatus == models.InvoicePaid {
			return fmt.Errorf("%w: invoice %s", models.ErrAlreadyPaid, inv.InvoiceNo)
		}

		newPaid := inv.AmountPaid.Add(in.AmountPaidNow)
		newStatus := models.StatusAfterPayment(newPaid, inv.TotalAmount)

		if err := tx.Model(&models.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"amount_paid":    newPaid,
				"invoice_status": newStatus,
			}).Error; err != nil {
			return err
		}

		// label yang sama diteruskan ke order + tanggal bayar
		now := time.Now().UTC()
		if err := tx.Model(&models.SalesOrder{}).
			Where("id = ?", inv.SalesOrderID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusFor(newStatus),
				"payment_date":   now,
			}).Error; err != nil {
			return err
		}

		// jurnal append-only
		if err := tx.Create(&models.InvoicePayment{
			InvoiceID:     inv.ID,
			Amount:        in.AmountPaidNow,
			PaymentMethod: in.PaymentMethod,
			ReceivedAt:    now,
		}).Error; err != nil {
			return err
		}

		inv.AmountPaid = newPaid
		inv.InvoiceStatus = newStatus
		return nil
	})
	if err != nil {
		h.respondDomainError(c, err, "Gagal mencatat pembayaran")
		return
	}

	utils.Success(c, "Pembayaran tercatat", gin.H{
		"invoice_status": inv.InvoiceStatus,
		"amount_paid":    inv.AmountPaid,
		"total_amount":   inv.TotalAmount,
	})
}

// GetInvoice detail invoice + jurnal pembayarannya.
func (h *Controller) GetInvoice(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}
	var inv models.Invoice
	if err := h.db.Preload("Payments").First(&inv, uint(id64)).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil invoice")
		return
	}
	utils.Success(c, "Berhasil mengambil invoice", inv)
}

// ListOverdueInvoices invoice yang sudah lewat jatuh tempo.
func (h *Controller) ListOverdueInvoices(c *gin.Context) {
	var rows []models.Invoice
	if err := h.db.Where("invoice_status = ?", models.InvoiceOverdue).
		Order("due_date ASC, id DESC").
		Find(&rows).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil invoice overdue")
		return
	}
	utils.Success(c, "Berhasil mengambil invoice overdue", rows)
}
