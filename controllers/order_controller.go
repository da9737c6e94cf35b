// controllers/order_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-postgres-orders/events"
	"go-postgres-orders/models"
	"go-postgres-orders/utils"
)

type StatusUpdateInput struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus transisi delivery_status di bawah row lock supaya tidak
// balapan dengan pembatalan bersamaan. Transisi ke Cancelled mengembalikan
// stok semua item dalam transaksi yang sama; restore gagal = pembatalan batal.
func (h *Controller) UpdateOrderStatus(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}

	var in StatusUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}
	if !models.ValidDeliveryStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("status %q tidak dikenal", in.Status)})
		return
	}

	var order models.SalesOrder
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).
			Preload("Items").
			First(&order, uint(id64)).Error; err != nil {
			return err
		}

		if err := models.CanTransitionDelivery(order.DeliveryStatus, in.Status); err != nil {
			return fmt.Errorf("%w: %s -> %s", err, order.DeliveryStatus, in.Status)
		}

		if in.Status == models.DeliveryCancelled {
			// kembalikan persis qty base unit yang dipotong saat checkout
			for _, it := range order.Items {
				if err := restoreForCancellation(tx, it.ProductID, it.BaseUnitQuantity); err != nil {
					return err
				}
			}
		}

		order.DeliveryStatus = in.Status
		return tx.Model(&models.SalesOrder{}).
			Where("id = ?", order.ID).
			Update("delivery_status", in.Status).Error
	})
	if err != nil {
		h.respondDomainError(c, err, "Gagal update status pesanan")
		return
	}

	if h.dispatcher != nil {
		h.dispatcher.Publish(events.StatusUpdatedEvent(order.ID, order.CustomerID, string(order.DeliveryStatus)))
	}

	utils.Success(c, "Status pesanan diperbarui", order)
}

// GetOrder detail pesanan + items + invoice.
func (h *Controller) GetOrder(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}
	var order models.SalesOrder
	if err := h.db.Preload("Items.Product").Preload("Invoice").Preload("Customer").
		First(&order, uint(id64)).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil pesanan")
		return
	}
	utils.Success(c, "Berhasil mengambil pesanan", order)
}

// ListOrders daftar pesanan, opsional filter status & rentang tanggal.
func (h *Controller) ListOrders(c *gin.Context) {
	q := h.db.Preload("Invoice").Order("id DESC")

	if s := c.Query("delivery_status"); s != "" {
		q = q.Where("delivery_status = ?", s)
	}
	if s := c.Query("payment_status"); s != "" {
		q = q.Where("payment_status = ?", s)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var rows []models.SalesOrder
	if err := q.Find(&rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.respondDomainError(c, err, "Gagal mengambil data pesanan")
		return
	}
	utils.Success(c, "Berhasil mengambil data pesanan", rows)
}
