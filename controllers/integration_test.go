// Tes integrasi butuh Postgres sungguhan; set TEST_DATABASE_URL untuk
// menjalankan, tanpa itu semua tes di file ini di-skip.
package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-postgres-orders/config"
	"go-postgres-orders/jobs"
	"go-postgres-orders/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL tidak di-set, skip tes integrasi")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Product{}, &models.Stock{},
		&models.SalesOrder{}, &models.SalesOrderItem{},
		&models.Invoice{}, &models.InvoicePayment{},
		&models.PurchaseOrder{}, &models.PurchaseOrderItem{},
	))
	require.NoError(t, db.Exec(`TRUNCATE invoice_payments, invoices,
		sales_order_items, sales_orders, purchase_order_items, purchase_orders,
		stocks, products, customers, users RESTART IDENTITY CASCADE`).Error)
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(db, nil, zap.NewNop(), &config.Config{
		InvoiceNetDays:  7,
		DeliveryCharges: decimal.Zero,
	})
	r := gin.New()
	r.POST("/checkout", h.Checkout)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.POST("/invoices/:id/payments", h.RecordPayment)
	r.PUT("/stocks/reallocate", h.ReallocateStocks)
	r.POST("/purchases", h.CreatePurchase)
	return r
}

func createProduct(t *testing.T, db *gorm.DB, kode, baseUnit, sellingUnit string, spq, available, saleable float64) models.Product {
	t.Helper()
	p := models.Product{
		Kode: kode, Nama: "Produk " + kode,
		BaseUnit: baseUnit, SellingUnit: sellingUnit, SellPerUnitQty: spq,
		HargaJual: decimal.NewFromInt(5),
	}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&models.Stock{
		ProductID: p.ID, AvailableQuantity: available, SaleableQuantity: saleable,
	}).Error)
	return p
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func checkoutBody(productID uint, qty float64, price string) gin.H {
	return gin.H{
		"cart_items": []gin.H{
			{"product_id": productID, "quantity": qty, "price": price},
		},
		"payment_method": "CASH",
		"customer_details": gin.H{
			"nama":  "Budi",
			"phone": "0812000111",
		},
	}
}

func saleableOf(t *testing.T, db *gorm.DB, productID uint) float64 {
	t.Helper()
	var s models.Stock
	require.NoError(t, db.Where("product_id = ?", productID).First(&s).Error)
	return s.SaleableQuantity
}

func TestCheckoutHappyPath(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "A-001", "piece", "piece", 1, 0, 10)

	body := checkoutBody(p.ID, 3, "5")
	body["delivery_charges"] = "2"
	w := doJSON(r, http.MethodPost, "/checkout", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.InDelta(t, 7, saleableOf(t, db, p.ID), 0.001)

	var order models.SalesOrder
	require.NoError(t, db.Preload("Items").Preload("Invoice").First(&order).Error)
	assert.Equal(t, models.DeliveryConfirmed, order.DeliveryStatus)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 3, order.Items[0].BaseUnitQuantity, 0.001)

	require.NotNil(t, order.Invoice)
	assert.True(t, order.Invoice.Subtotal.Equal(decimal.NewFromInt(15)), order.Invoice.Subtotal.String())
	assert.True(t, order.Invoice.TotalAmount.Equal(decimal.NewFromInt(17)), order.Invoice.TotalAmount.String())
	assert.Equal(t, models.InvoiceUpcoming, order.Invoice.InvoiceStatus)
	assert.NotEmpty(t, order.Invoice.InvoiceNo)
}

func TestCheckoutUnitConversionDeductsBaseUnits(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	// stok 10 kg, jual kemasan 500 gm
	p := createProduct(t, db, "B-001", "kg", "gm", 500, 0, 10)

	w := doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 4, "3"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 4 x 500gm = 2000gm = 2kg
	assert.InDelta(t, 8, saleableOf(t, db, p.ID), 0.001)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "C-001", "piece", "piece", 1, 0, 2)

	w := doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 3, "5"))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	assert.InDelta(t, 2, saleableOf(t, db, p.ID), 0.001)

	var cnt int64
	db.Model(&models.SalesOrder{}).Count(&cnt)
	assert.Zero(t, cnt, "order parsial tidak boleh tersisa")
	db.Model(&models.Invoice{}).Count(&cnt)
	assert.Zero(t, cnt)
	db.Model(&models.SalesOrderItem{}).Count(&cnt)
	assert.Zero(t, cnt)
}

func TestCheckoutRejectsEmptyCartAndBadInput(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "D-001", "piece", "piece", 1, 0, 10)

	w := doJSON(r, http.MethodPost, "/checkout", gin.H{
		"cart_items":       []gin.H{},
		"payment_method":   "CASH",
		"customer_details": gin.H{"nama": "Budi", "phone": "0812"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, -1, "5"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 1, "0"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/checkout", checkoutBody(99999, 1, "5"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.InDelta(t, 10, saleableOf(t, db, p.ID), 0.001)
}

func TestCancellationRestoresStockAndIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "E-001", "piece", "piece", 1, 0, 10)

	w := doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 3, "5"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 7, saleableOf(t, db, p.ID), 0.001)

	var order models.SalesOrder
	require.NoError(t, db.First(&order).Error)

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{"status": "Cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.InDelta(t, 10, saleableOf(t, db, p.ID), 0.001)
	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.DeliveryCancelled, order.DeliveryStatus)

	// terminal: transisi lanjutan ditolak
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{"status": "Packing"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeliveryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "F-001", "piece", "piece", 1, 0, 10)

	w := doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 1, "5"))
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.SalesOrder
	require.NoError(t, db.First(&order).Error)
	path := fmt.Sprintf("/orders/%d/status", order.ID)

	// loncat tahap ditolak
	w = doJSON(r, http.MethodPatch, path, gin.H{"status": "In Transit"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, s := range []string{"Packing", "In Transit", "Delivered"} {
		w = doJSON(r, http.MethodPatch, path, gin.H{"status": s})
		require.Equal(t, http.StatusOK, w.Code, s)
	}

	// Delivered terminal, termasuk untuk pembatalan
	w = doJSON(r, http.MethodPatch, path, gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)
	// stok tidak berubah karena tidak pernah dibatalkan
	assert.InDelta(t, 9, saleableOf(t, db, p.ID), 0.001)
}

func TestRecordPaymentAccumulatesAndGuards(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "G-001", "piece", "piece", 1, 0, 10)

	body := checkoutBody(p.ID, 3, "5")
	body["delivery_charges"] = "2" // total 17
	w := doJSON(r, http.MethodPost, "/checkout", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invoice
	require.NoError(t, db.First(&inv).Error)
	path := fmt.Sprintf("/invoices/%d/payments", inv.ID)

	w = doJSON(r, http.MethodPost, path, gin.H{"amount_paid_now": "10", "payment_method": "CASH"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.First(&inv, inv.ID).Error)
	assert.Equal(t, models.InvoicePartiallyPaid, inv.InvoiceStatus)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(10)))

	var order models.SalesOrder
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.PaymentPartiallyPaid, order.PaymentStatus)
	require.NotNil(t, order.PaymentDate)

	w = doJSON(r, http.MethodPost, path, gin.H{"amount_paid_now": "7"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&inv, inv.ID).Error)
	assert.Equal(t, models.InvoicePaid, inv.InvoiceStatus)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	// sudah lunas: tolak
	w = doJSON(r, http.MethodPost, path, gin.H{"amount_paid_now": "1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// amount_paid tidak pernah turun, jurnal lengkap
	require.NoError(t, db.First(&inv, inv.ID).Error)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(17)))
	var journal int64
	db.Model(&models.InvoicePayment{}).Where("invoice_id = ?", inv.ID).Count(&journal)
	assert.EqualValues(t, 2, journal)

	// jumlah tidak valid
	w = doJSON(r, http.MethodPost, path, gin.H{"amount_paid_now": "-3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReallocationConservation(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p1 := createProduct(t, db, "H-001", "kg", "gm", 500, 30, 70)
	p2 := createProduct(t, db, "H-002", "kg", "gm", 500, 10, 10)

	// satu baris melanggar konservasi: seluruh batch batal
	w := doJSON(r, http.MethodPut, "/stocks/reallocate", gin.H{
		"updates": []gin.H{
			{"product_id": p1.ID, "available_quantity": 50, "saleable_quantity": 50},
			{"product_id": p2.ID, "available_quantity": 15, "saleable_quantity": 10},
		},
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var s1, s2 models.Stock
	require.NoError(t, db.Where("product_id = ?", p1.ID).First(&s1).Error)
	require.NoError(t, db.Where("product_id = ?", p2.ID).First(&s2).Error)
	assert.InDelta(t, 30, s1.AvailableQuantity, 0.001, "batch gagal tidak boleh menyentuh baris lain")
	assert.InDelta(t, 70, s1.SaleableQuantity, 0.001)
	assert.InDelta(t, 10, s2.AvailableQuantity, 0.001)

	// batch valid diterapkan semua
	w = doJSON(r, http.MethodPut, "/stocks/reallocate", gin.H{
		"updates": []gin.H{
			{"product_id": p1.ID, "available_quantity": 50, "saleable_quantity": 50},
			{"product_id": p2.ID, "available_quantity": 5, "saleable_quantity": 15},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.Where("product_id = ?", p1.ID).First(&s1).Error)
	require.NoError(t, db.Where("product_id = ?", p2.ID).First(&s2).Error)
	assert.InDelta(t, 50, s1.AvailableQuantity, 0.001)
	assert.InDelta(t, 15, s2.SaleableQuantity, 0.001)
}

func TestPurchaseReceiptIncreasesOnlyAvailable(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "I-001", "kg", "gm", 500, 5, 20)

	w := doJSON(r, http.MethodPost, "/purchases", gin.H{
		"supplier_name": "CV Tani Maju",
		"items": []gin.H{
			{"product_id": p.ID, "quantity": 12.5, "buy_price": "9"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var s models.Stock
	require.NoError(t, db.Where("product_id = ?", p.ID).First(&s).Error)
	assert.InDelta(t, 17.5, s.AvailableQuantity, 0.001)
	assert.InDelta(t, 20, s.SaleableQuantity, 0.001)
}

func TestConcurrentDeductionsNeverOversell(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "J-001", "piece", "piece", 1, 0, 5)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- db.Transaction(func(tx *gorm.DB) error {
				return deductForSale(tx, p.ID, 1)
			})
		}()
	}
	wg.Wait()
	close(results)

	success := 0
	for err := range results {
		if err == nil {
			success++
		}
	}
	assert.Equal(t, 5, success, "total deduksi sukses tidak boleh melebihi stok awal")
	assert.InDelta(t, 0, saleableOf(t, db, p.ID), 0.001)
}

func TestOverdueSweepIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	p := createProduct(t, db, "K-001", "piece", "piece", 1, 0, 10)

	w := doJSON(r, http.MethodPost, "/checkout", checkoutBody(p.ID, 1, "5"))
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invoice
	require.NoError(t, db.First(&inv).Error)
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("id = ?", inv.ID).
		Update("due_date", time.Now().UTC().AddDate(0, 0, -1)).Error)

	n, err := jobs.SweepOverdueInvoices(db, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, db.First(&inv, inv.ID).Error)
	assert.Equal(t, models.InvoiceOverdue, inv.InvoiceStatus)

	// run kedua tidak mengubah apa-apa
	n, err = jobs.SweepOverdueInvoices(db, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, n)
}
