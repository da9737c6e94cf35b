// controllers/product_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-postgres-orders/models"
	"go-postgres-orders/units"
	"go-postgres-orders/utils"
)

type ProductInput struct {
	Kode           string          `json:"kode" binding:"required"`
	Nama           string          `json:"nama" binding:"required"`
	BaseUnit       string          `json:"base_unit" binding:"required"`
	SellingUnit    string          `json:"selling_unit" binding:"required"`
	SellPerUnitQty float64         `json:"sell_per_unit_qty" binding:"required,gt=0"`
	HargaBeli      decimal.Decimal `json:"harga_beli"`
	HargaJual      decimal.Decimal `json:"harga_jual"`
	Deskripsi      string          `json:"deskripsi"`
}

func (h *Controller) CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	p := models.Product{
		Kode:           in.Kode,
		Nama:           in.Nama,
		BaseUnit:       in.BaseUnit,
		SellingUnit:    in.SellingUnit,
		SellPerUnitQty: in.SellPerUnitQty,
		HargaBeli:      in.HargaBeli,
		HargaJual:      in.HargaJual,
		Deskripsi:      in.Deskripsi,
	}
	if err := h.db.Create(&p).Error; err != nil {
		h.respondDomainError(c, err, "Gagal membuat produk")
		return
	}
	utils.Created(c, "Produk dibuat", p)
}

func (h *Controller) ListProducts(c *gin.Context) {
	var rows []models.Product
	q := h.db.Preload("Stock").Order("id DESC")
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("nama ILIKE ? OR kode ILIKE ?", like, like)
	}
	if err := q.Find(&rows).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil data produk")
		return
	}
	utils.Success(c, "Berhasil mengambil data produk", rows)
}

// GetProduct detail produk + berapa kemasan utuh yang masih bisa dijual.
func (h *Controller) GetProduct(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}
	var p models.Product
	if err := h.db.Preload("Stock").First(&p, uint(id64)).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil produk")
		return
	}

	var maxCartable int64
	if p.Stock != nil {
		maxCartable = units.MaxCartableQuantity(p.Stock.SaleableQuantity, p.BaseUnit, p.SellingUnit, p.SellPerUnitQty)
	}
	utils.Success(c, "Berhasil mengambil produk", gin.H{
		"product":               p,
		"max_cartable_quantity": maxCartable,
	})
}

// UpdateProduct hanya harga & deskripsi; identitas dan satuan produk yang
// sudah dirujuk order historis tidak boleh berubah.
func (h *Controller) UpdateProduct(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id tidak valid"})
		return
	}

	var in struct {
		HargaBeli *decimal.Decimal `json:"harga_beli"`
		HargaJual *decimal.Decimal `json:"harga_jual"`
		Deskripsi *string          `json:"deskripsi"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	var p models.Product
	if err := h.db.First(&p, uint(id64)).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil produk")
		return
	}

	updates := map[string]interface{}{}
	if in.HargaBeli != nil {
		updates["harga_beli"] = *in.HargaBeli
	}
	if in.HargaJual != nil {
		updates["harga_jual"] = *in.HargaJual
	}
	if in.Deskripsi != nil {
		updates["deskripsi"] = *in.Deskripsi
	}
	if len(updates) > 0 {
		if err := h.db.Model(&p).Updates(updates).Error; err != nil {
			h.respondDomainError(c, err, "Gagal update produk")
			return
		}
	}
	utils.Success(c, "Produk diperbarui", p)
}
