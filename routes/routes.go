package routes

import (
	"go-postgres-orders/controllers"
	"go-postgres-orders/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *controllers.Controller) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", h.Login)

		// checkout publik (identitas customer dari payload)
		api.POST("/checkout", h.Checkout)

		// katalog & stok read-only
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/stocks/:product_id", h.GetStock)

		// semua mutasi operasional butuh token staf
		auth := api.Group("/", middlewares.Auth())
		{
			auth.POST("/products", h.CreateProduct)
			auth.PUT("/products/:id", h.UpdateProduct)

			auth.GET("/orders", h.ListOrders)
			auth.GET("/orders/:id", h.GetOrder)
			auth.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			auth.GET("/invoices/overdue", h.ListOverdueInvoices)
			auth.GET("/invoices/:id", h.GetInvoice)
			auth.POST("/invoices/:id/payments", h.RecordPayment)

			auth.PUT("/stocks/reallocate", h.ReallocateStocks)

			auth.GET("/purchases", h.ListPurchases)
			auth.POST("/purchases", h.CreatePurchase)
		}
	}
}
