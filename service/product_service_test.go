package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/testutil"
)

func strPtr(v string) *string { return &v }

func TestProductCreate_Validation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	cat := testutil.Category(t, db, "Minuman")

	if _, err := svc.Products.Create(ctx, ProductInput{
		Name: "Kopi", SKU: strPtr("KP-01"), Barcode: strPtr("899001"), Price: 10000, CategoryID: cat.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name string
		in   ProductInput
		msg  string
	}{
		{"missing category", ProductInput{Name: "Teh", Price: 5000, CategoryID: 999}, "Kategori tidak ditemukan"},
		{"duplicate sku", ProductInput{Name: "Teh", SKU: strPtr("KP-01"), Price: 5000, CategoryID: cat.ID}, "SKU sudah digunakan"},
		{"duplicate barcode", ProductInput{Name: "Teh", Barcode: strPtr("899001"), Price: 5000, CategoryID: cat.ID}, "Barcode sudah digunakan"},
		{"zero price", ProductInput{Name: "Teh", Price: 0, CategoryID: cat.ID}, "Harga harus lebih dari 0"},
		{"unknown unit", ProductInput{Name: "Teh", Price: 5000, CategoryID: cat.ID, UnitID: new(uint)}, "Satuan tidak ditemukan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Products.Create(ctx, tt.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Msg != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, ve.Msg)
			}
		})
	}
}

func TestProductStatus(t *testing.T) {
	tests := []struct {
		name   string
		p      models.Product
		status string
	}{
		{"inactive wins", models.Product{IsActive: false, Stock: 100}, models.ProductInactive},
		{"out of stock", models.Product{IsActive: true, Stock: 0, MinStock: 5}, models.ProductOutOfStock},
		{"low stock", models.Product{IsActive: true, Stock: 5, MinStock: 5}, models.ProductLowStock},
		{"in stock", models.Product{IsActive: true, Stock: 6, MinStock: 5}, models.ProductInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.StockStatus(); got != tt.status {
				t.Errorf("expected %s, got %s", tt.status, got)
			}
		})
	}
}

func TestProductList_FilterAndPaging(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	cat := testutil.Category(t, db, "Minuman")
	testutil.Product(t, db, cat.ID, "Kopi Susu", 10000, nil, 50)
	testutil.Product(t, db, cat.ID, "Kopi Hitam", 8000, nil, 3)
	testutil.Product(t, db, cat.ID, "Teh", 5000, nil, 0)

	rows, pg, err := svc.Products.List(ctx, ProductFilter{Search: "kopi", Page: 1, PageSize: 1, SortBy: "-price"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pg.Total != 2 || pg.TotalPages != 2 || len(rows) != 1 {
		t.Fatalf("unexpected paging %+v rows=%d", pg, len(rows))
	}
	if rows[0].Name != "Kopi Susu" || rows[0].Status != models.ProductInStock {
		t.Errorf("unexpected first row %+v", rows[0])
	}

	low, _, err := svc.Products.List(ctx, ProductFilter{Status: models.ProductLowStock})
	if err != nil {
		t.Fatalf("list low: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Kopi Hitam" {
		t.Errorf("unexpected low stock rows %+v", low)
	}

	var ve *ValidationError
	if _, _, err := svc.Products.List(ctx, ProductFilter{Status: "meh"}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for bad status, got %v", err)
	}
}

func TestProductUpdate_KeepsStockAndDeactivates(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	cat := testutil.Category(t, db, "Minuman")
	p := testutil.Product(t, db, cat.ID, "Kopi", 10000, nil, 50)

	inactive := false
	v, err := svc.Products.Update(ctx, p.ID, ProductInput{Name: "Kopi Gayo", Price: 12000, Stock: 1, CategoryID: cat.ID, IsActive: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v.Name != "Kopi Gayo" || v.Price != 12000 {
		t.Errorf("fields not updated: %+v", v.Product)
	}
	if v.Stock != 50 {
		t.Errorf("stock must not change on update, got %d", v.Stock)
	}
	if v.Status != models.ProductInactive {
		t.Errorf("expected inactive, got %s", v.Status)
	}

	if err := svc.Products.Deactivate(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProductStockHistory(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	cashier := testutil.Cashier(t, db, "kasir1")
	cat := testutil.Category(t, db, "Minuman")
	p := testutil.Product(t, db, cat.ID, "Kopi", 10000, nil, 50)

	if _, err := svc.Orders.Checkout(ctx, CheckoutInput{
		CashierID: cashier.ID, PaymentMethod: models.PaymentCard,
		Items: []CheckoutItem{{ProductID: p.ID, Quantity: 4, UnitPrice: 10000}},
	}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	rows, pg, err := svc.Products.StockHistory(ctx, p.ID, 1, 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if pg.Total != 1 || rows[0].OldStock != 50 || rows[0].NewStock != 46 || rows[0].Delta != -4 {
		t.Errorf("unexpected history %+v", rows)
	}
	if _, _, err := svc.Products.StockHistory(ctx, 999, 1, 20); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
