// controllers/purchase_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-postgres-orders/models"
	"go-postgres-orders/utils"
)

type PurchaseInput struct {
	SupplierName string              `json:"supplier_name" binding:"required"`
	PurchaseDate time.Time           `json:"purchase_date"`
	Items        []PurchaseItemInput `json:"items" binding:"required,min=1"`
}

type PurchaseItemInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  float64         `json:"quantity"` // base unit
	BuyPrice  decimal.Decimal `json:"buy_price"`
}

// CreatePurchase catat penerimaan pembelian; per item upsert stok ke
// available_quantity dalam satu transaksi dengan header + items.
func (h *Controller) CreatePurchase(c *gin.Context) {
	var in PurchaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.BuyPrice.IsNegative() {
			h.respondDomainError(c,
				fmt.Errorf("%w: product_id=%d", models.ErrInvalidPriceOrQuantity, it.ProductID),
				"Gagal mencatat pembelian")
			return
		}
	}
	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = time.Now().UTC()
	}

	uid, _ := currentUserID(c)

	var po models.PurchaseOrder
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range in.Items {
			var cnt int64
			if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return fmt.Errorf("%w: product_id=%d", models.ErrProductNotFound, it.ProductID)
			}
		}

		items := make([]models.PurchaseOrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.PurchaseOrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				BuyPrice:  it.BuyPrice,
			})
		}
		po = models.PurchaseOrder{
			SupplierName: in.SupplierName,
			PurchaseDate: in.PurchaseDate,
			Items:        items,
			CreatedByID:  uid,
		}
		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			if err := receivePurchase(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.respondDomainError(c, err, "Gagal mencatat pembelian")
		return
	}

	utils.Created(c, "Pembelian tercatat, stok bertambah", po)
}

// ListPurchases riwayat penerimaan pembelian.
func (h *Controller) ListPurchases(c *gin.Context) {
	var rows []models.PurchaseOrder
	if err := h.db.Preload("Items.Product").Order("id DESC").Find(&rows).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil data pembelian")
		return
	}
	utils.Success(c, "Berhasil mengambil data pembelian", rows)
}
