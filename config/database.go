package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB buka koneksi Postgres dan kembalikan handle-nya. Tidak ada
// singleton package-level; handle dioper eksplisit ke controller/job.
func ConnectDB() (*gorm.DB, error) {
	// 1) Ambil URL dari env (deploy biasanya pakai DATABASE_URL)
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DB_URL")
	}

	// 2) Fallback lokal
	if dbURL == "" {
		host := "localhost"
		user := "postgres"
		password := "12345"
		dbname := "orders"
		port := "5432"
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, password, dbname, port,
		)
	} else {
		// hosting sering butuh sslmode=require; kalau belum ada, tambahkan
		if !strings.Contains(dbURL, "sslmode=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "sslmode=require"
		}
		// pastikan search_path public agar tabel dibuat di schema public
		if !strings.Contains(dbURL, "search_path=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "search_path=public"
		}
	}

	// 3) Buka koneksi dengan logger agar kelihatan errornya
	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn, // bisa naikkan ke Info saat debug
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek ke database: %w", err)
	}

	// 4) Session rapi: schema public, timezone UTC
	if err := db.Exec(`SET search_path TO public`).Error; err != nil {
		log.Printf("gagal set search_path public: %v", err)
	}
	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("gagal set timezone UTC: %v", err)
	}

	var dbName string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	log.Printf("DB connected: db=%s", dbName)

	return db, nil
}
