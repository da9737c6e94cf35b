package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-postgres-orders/config"
	"go-postgres-orders/controllers"
	"go-postgres-orders/events"
	"go-postgres-orders/jobs"
	"go-postgres-orders/models"
	"go-postgres-orders/routes"
	"go-postgres-orders/units"
	"go-postgres-orders/utils"
)

func main() {
	cfg := config.Load()

	log := config.NewLogger()
	defer func() { _ = log.Sync() }()
	units.SetLogger(log)
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("koneksi database gagal", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.Stock{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.Invoice{},
		&models.InvoicePayment{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
	); err != nil {
		log.Fatal("auto-migrate gagal", zap.Error(err))
	}

	if cfg.SeedDemo {
		config.SeedDemo(db)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// kolaborator notifikasi dengar event lewat dispatcher, bukan callback
	// inline di dalam transaksi
	dispatcher := events.NewDispatcher(128, log)
	go dispatcher.Run(ctx)

	// sweep konsistensi invoice jalan di timer sendiri
	go jobs.StartOverdueSweep(ctx, db, log, cfg.SweepInterval)

	h := controllers.New(db, dispatcher, log, cfg)

	r := gin.Default()
	routes.SetupRoutes(r, h)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Orders API is running"})
	})

	log.Info("server mulai", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server berhenti", zap.Error(err))
	}
}
