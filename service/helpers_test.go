package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/testutil"

	"gorm.io/gorm"
)

// WIB tanpa tzdata supaya test tidak tergantung sistem.
var wib = time.FixedZone("WIB", 7*3600)

// Kamis, 15 Oktober 2026 10:00 WIB
var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, wib)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := New(db, Options{
		Location: wib,
		Now:      func() time.Time { return fixedNow },
	})
	return svc, db
}

type line struct {
	product models.Product
	qty     int
}

// seedOrder menulis order COMPLETED langsung ke DB pada waktu tertentu.
func seedOrder(t *testing.T, db *gorm.DB, cashierID uint, at time.Time, method models.PaymentMethod, customerID *uint, lines ...line) models.Order {
	t.Helper()
	subs := make([]int64, 0, len(lines))
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		sub := l.product.Price * int64(l.qty)
		subs = append(subs, sub)
		items = append(items, models.OrderItem{
			ProductID:      l.product.ID,
			ProductName:    l.product.Name,
			Quantity:       l.qty,
			UnitPrice:      l.product.Price,
			WholesalePrice: l.product.WholesalePrice,
			Subtotal:       sub,
		})
	}
	totals := ComputeTotals(subs, 0)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	o := models.Order{
		OrderNumber:   fmt.Sprintf("SEED-%06d", count+1),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		AmountPaid:    totals.Total,
		PaymentMethod: method,
		PaymentStatus: models.PaymentPaid,
		Status:        models.OrderCompleted,
		CustomerID:    customerID,
		CashierID:     cashierID,
		Items:         items,
		CreatedAt:     at.UTC(),
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func day(d, hour int) time.Time {
	return time.Date(2026, 10, d, hour, 0, 0, 0, wib)
}
