package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB membuka satu pool koneksi untuk seluruh aplikasi.
// Pool ini di-inject ke service dan ditutup lewat CloseDB saat shutdown.
func ConnectDB(cfg Config, logg *logrus.Logger) (*gorm.DB, error) {
	dbURL := cfg.DatabaseURL

	// Fallback lokal
	if dbURL == "" {
		dbURL = "host=localhost user=postgres password=12345 dbname=pos port=5432 sslmode=disable"
	} else {
		// Render sering butuh sslmode=require; kalau belum ada, tambahkan
		dbURL = withParam(dbURL, "sslmode", "require")
		// pastikan search_path public agar tabel dibuat di schema public
		dbURL = withParam(dbURL, "search_path", "public")
	}

	gormLogger := logger.New(
		log.New(logg.Writer(), "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn, // bisa naikkan ke Info saat debug
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek ke database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		logg.WithError(err).Warn("gagal set timezone UTC")
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	logg.WithFields(logrus.Fields{"db": dbName, "user": currentUser}).Info("DB connected")

	return db, nil
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}
