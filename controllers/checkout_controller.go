// controllers/checkout_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-postgres-orders/events"
	"go-postgres-orders/models"
	"go-postgres-orders/units"
	"go-postgres-orders/utils"
)

type CheckoutInput struct {
	CartItems       []CartItemInput      `json:"cart_items"`
	PaymentMethod   string               `json:"payment_method" binding:"required"` // CASH | BANK | CREDIT
	DeliveryCharges *decimal.Decimal     `json:"delivery_charges"`
	CustomerDetails CustomerDetailsInput `json:"customer_details" binding:"required"`
}

type CartItemInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  float64         `json:"quantity"` // jumlah kemasan (selling unit)
	Price     decimal.Decimal `json:"price"`    // harga jual per kemasan
}

type CustomerDetailsInput struct {
	Nama    string `json:"nama" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// Checkout ubah keranjang jadi SalesOrder + Invoice + deduksi stok dalam satu
// transaksi all-or-nothing. Gagal di item manapun = tidak ada baris yang
// tersisa. Event new_order dikirim setelah commit, best-effort.
func (h *Controller) Checkout(c *gin.Context) {
	var in CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}

	if len(in.CartItems) == 0 {
		h.respondDomainError(c, models.ErrEmptyCart, "Gagal checkout")
		return
	}
	pm := strings.ToUpper(in.PaymentMethod)
	if pm != "CASH" && pm != "BANK" && pm != "CREDIT" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Metode pembayaran tidak valid"})
		return
	}
	for _, it := range in.CartItems {
		if it.Quantity <= 0 || !it.Price.IsPositive() {
			h.respondDomainError(c,
				fmt.Errorf("%w: product_id=%d", models.ErrInvalidPriceOrQuantity, it.ProductID),
				"Gagal checkout")
			return
		}
	}

	deliveryCharges := h.cfg.DeliveryCharges
	if in.DeliveryCharges != nil {
		if in.DeliveryCharges.IsNegative() {
			h.respondDomainError(c, fmt.Errorf("%w: delivery_charges", models.ErrInvalidPriceOrQuantity), "Gagal checkout")
			return
		}
		deliveryCharges = *in.DeliveryCharges
	}

	var order models.SalesOrder

	// retry terbatas untuk antisipasi bentrok unik nomor invoice; transaksi
	// sebelumnya sudah rollback penuh jadi aman diulang
	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = h.db.Transaction(func(tx *gorm.DB) error {
			// find-or-create customer by phone
			var cust models.Customer
			err := tx.Where("phone = ?", in.CustomerDetails.Phone).First(&cust).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				cust = models.Customer{
					Nama:    in.CustomerDetails.Nama,
					Phone:   in.CustomerDetails.Phone,
					Address: in.CustomerDetails.Address,
				}
				err = tx.Create(&cust).Error
			}
			if err != nil {
				return err
			}

			// header dulu, status awal Confirmed/Pending
			order = models.SalesOrder{
				CustomerID:     cust.ID,
				CustomerName:   cust.Nama,
				PaymentMethod:  pm,
				DeliveryStatus: models.DeliveryConfirmed,
				PaymentStatus:  models.PaymentPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			subtotal := decimal.Zero
			for _, it := range in.CartItems {
				var p models.Product
				if err := tx.First(&p, it.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: product_id=%d", models.ErrProductNotFound, it.ProductID)
					}
					return err
				}

				baseQty := units.ToBaseUnit(it.Quantity, p.SellingUnit, p.SellPerUnitQty, p.BaseUnit)
				qtyDec := decimal.NewFromFloat(it.Quantity)
				lineTotal := it.Price.Mul(qtyDec)

				item := models.SalesOrderItem{
					SalesOrderID:     order.ID,
					ProductID:        p.ID,
					SoldQuantity:     it.Quantity,
					SoldPrice:        it.Price,
					LineTotal:        lineTotal.Round(2),
					BaseUnitQuantity: baseQty,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}

				if err := deductForSale(tx, p.ID, baseQty); err != nil {
					return err
				}

				subtotal = subtotal.Add(lineTotal)
			}
			subtotal = subtotal.Round(2)
			total := subtotal.Add(deliveryCharges).Round(2)

			// nomor invoice sekuensial
			var seq int64
			if err := tx.Raw("SELECT COALESCE(MAX(id),0)+1 FROM invoices").Scan(&seq).Error; err != nil {
				return err
			}
			now := time.Now().UTC()
			inv := models.Invoice{
				InvoiceNo:       utils.GenInvoiceCode(seq, now),
				SalesOrderID:    order.ID,
				Subtotal:        subtotal,
				DeliveryCharges: deliveryCharges,
				TotalAmount:     total,
				AmountPaid:      decimal.Zero,
				InvoiceStatus:   models.InvoiceUpcoming,
				InvoiceDate:     now,
				DueDate:         now.AddDate(0, 0, h.cfg.InvoiceNetDays),
			}
			if err := tx.Create(&inv).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("unique_violation: %w", err)
				}
				return err
			}
			return nil
		})

		if lastErr == nil {
			break
		}
		if strings.Contains(lastErr.Error(), "unique_violation") {
			continue
		}
		break
	}

	if lastErr != nil {
		h.respondDomainError(c, lastErr, "Gagal checkout")
		return
	}

	// reload lengkap untuk response
	if err := h.db.Preload("Items.Product").Preload("Invoice").Preload("Customer").
		First(&order, order.ID).Error; err != nil {
		h.respondDomainError(c, err, "Gagal mengambil pesanan")
		return
	}

	// post-commit: event untuk kolaborator notifikasi
	if h.dispatcher != nil && order.Invoice != nil {
		evItems := make([]events.EventItem, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, events.EventItem{
				ProductID: it.ProductID,
				Nama:      it.Product.Nama,
				Quantity:  it.SoldQuantity,
			})
		}
		h.dispatcher.Publish(events.NewOrderEvent(order.ID, order.CustomerID, evItems, order.Invoice.TotalAmount))
	}

	utils.Created(c, "Checkout berhasil", order)
}
