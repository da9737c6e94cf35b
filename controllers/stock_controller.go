// controllers/stock_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-postgres-orders/models"
	"go-postgres-orders/units"
	"go-postgres-orders/utils"
)

type ReallocateInput struct {
	Updates []StockReallocation `json:"updates" binding:"required,min=1"`
}

// ReallocateStocks endpoint batch pindah stok antar bucket. Satu pelanggaran
// konservasi membatalkan seluruh batch (409 + produk yang melanggar).
func (h *Controller) ReallocateStocks(c *gin.Context) {
	var in ReallocateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return reallocateStocks(tx, in.Updates)
	})
	if err != nil {
		h.respondDomainError(c, err, "Gagal realokasi stok")
		return
	}

	utils.Success(c, "Realokasi stok berhasil", gin.H{"updated": len(in.Updates)})
}

// GetStock posisi stok satu produk.
func (h *Controller) GetStock(c *gin.Context) {
	pid64, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "product_id tidak valid"})
		return
	}
	var s models.Stock
	if err := h.db.Preload("Product").Where("product_id = ?", uint(pid64)).First(&s).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil stok")
		return
	}
	utils.Success(c, "Berhasil mengambil stok", gin.H{
		"stock": s,
		"max_cartable_quantity": units.MaxCartableQuantity(
			s.SaleableQuantity, s.Product.BaseUnit, s.Product.SellingUnit, s.Product.SellPerUnitQty),
	})
}
