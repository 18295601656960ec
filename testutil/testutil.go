// Package testutil menyediakan database sqlite in-memory dan data contoh untuk test.
package testutil

import (
	"testing"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB membuka sqlite in-memory dengan semua tabel sudah dimigrasi.
// Satu koneksi saja: setiap koneksi :memory: adalah database terpisah.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func Cashier(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		FullName:     "Kasir " + username,
		Role:         models.RoleCashier,
		PasswordHash: "x",
		IsActive:     true,
	}
	mustCreate(t, db, &u)
	return u
}

func Category(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	mustCreate(t, db, &c)
	return c
}

func Supplier(t *testing.T, db *gorm.DB, name string) models.Supplier {
	t.Helper()
	s := models.Supplier{Name: name}
	mustCreate(t, db, &s)
	return s
}

func Customer(t *testing.T, db *gorm.DB, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name}
	mustCreate(t, db, &c)
	return c
}

// Product membuat produk aktif. wholesale boleh nil.
func Product(t *testing.T, db *gorm.DB, categoryID uint, name string, price int64, wholesale *int64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:           name,
		Price:          price,
		WholesalePrice: wholesale,
		Stock:          stock,
		MinStock:       5,
		IsActive:       true,
		CategoryID:     categoryID,
	}
	mustCreate(t, db, &p)
	return p
}

func Int64(v int64) *int64 { return &v }

func Stock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var p models.Product
	if err := db.Select("id", "stock").First(&p, productID).Error; err != nil {
		t.Fatalf("load product %d: %v", productID, err)
	}
	return p.Stock
}
