package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config semua knob runtime dari environment. .env hanya untuk development.
type Config struct {
	Port            string
	JWTSecret       string
	SweepInterval   time.Duration
	InvoiceNetDays  int
	DeliveryCharges decimal.Decimal // default kalau request tidak kirim
	SeedDemo        bool
}

func Load() *Config {
	_ = godotenv.Load() // tidak apa-apa kalau .env tidak ada

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		JWTSecret:       getenv("JWT_SECRET", "rahasia-super-kuat"),
		SweepInterval:   5 * time.Minute,
		InvoiceNetDays:  7,
		DeliveryCharges: decimal.Zero,
		SeedDemo:        os.Getenv("SEED_DEMO") == "1",
	}

	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}
	if v := os.Getenv("INVOICE_NET_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.InvoiceNetDays = n
		}
	}
	if v := os.Getenv("DELIVERY_CHARGES"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.DeliveryCharges = d
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
