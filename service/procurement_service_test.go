package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/testutil"
)

func statusPtr[T ~string](v T) *T { return &v }

func TestProcurement_ReceiveIncrementsStockOnce(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	sup := testutil.Supplier(t, db, "PT Sumber")
	cat := testutil.Category(t, db, "Umum")
	a := testutil.Product(t, db, cat.ID, "Gula", 15000, nil, 10)
	b := testutil.Product(t, db, cat.ID, "Beras", 70000, nil, 0)

	p, err := svc.Procurements.Create(ctx, CreateProcurementInput{
		SupplierID: sup.ID,
		Status:     models.ProcurementOrdered,
		Items: []ProcurementItemInput{
			{ProductID: a.ID, Quantity: 5, UnitCost: 12000},
			{ProductID: b.ID, Quantity: 3, UnitCost: 60000},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.TotalItems != 8 || p.TotalAmount != 240000 {
		t.Errorf("unexpected totals items=%d amount=%d", p.TotalItems, p.TotalAmount)
	}
	if p.OrderDate == nil {
		t.Errorf("order date must be set for ORDERED")
	}

	received, err := svc.Procurements.Update(ctx, p.ID, UpdateProcurementInput{Status: statusPtr(models.ProcurementReceived)})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if received.Status != models.ProcurementReceived || received.ReceivedDate == nil {
		t.Errorf("expected RECEIVED with date, got %s", received.Status)
	}
	if got := testutil.Stock(t, db, a.ID); got != 15 {
		t.Errorf("expected gula 15, got %d", got)
	}
	if got := testutil.Stock(t, db, b.ID); got != 3 {
		t.Errorf("expected beras 3, got %d", got)
	}

	// PUT kedua ditolak dan stok tidak bertambah lagi
	_, err = svc.Procurements.Update(ctx, p.ID, UpdateProcurementInput{Status: statusPtr(models.ProcurementReceived)})
	var se *StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if got := testutil.Stock(t, db, a.ID); got != 15 {
		t.Errorf("stock incremented twice: %d", got)
	}

	var hist int64
	db.Model(&models.StockHistory{}).Where("reason = ?", models.StockProcurement).Count(&hist)
	if hist != 2 {
		t.Errorf("expected 2 history rows, got %d", hist)
	}
}

func TestProcurement_DeleteReceivedRejected(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	sup := testutil.Supplier(t, db, "PT Sumber")
	cat := testutil.Category(t, db, "Umum")
	a := testutil.Product(t, db, cat.ID, "Gula", 15000, nil, 10)

	p, err := svc.Procurements.Create(ctx, CreateProcurementInput{
		SupplierID: sup.ID,
		Status:     models.ProcurementOrdered,
		Items:      []ProcurementItemInput{{ProductID: a.ID, Quantity: 2, UnitCost: 12000}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Procurements.Update(ctx, p.ID, UpdateProcurementInput{Status: statusPtr(models.ProcurementReceived)}); err != nil {
		t.Fatalf("receive: %v", err)
	}

	err = svc.Procurements.Delete(ctx, p.ID)
	var se *StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError, got %v", err)
	}
	got, err := svc.Procurements.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("record must still exist: %v", err)
	}
	if got.Status != models.ProcurementReceived || len(got.Items) != 1 {
		t.Errorf("record changed: %+v", got)
	}
}

func TestProcurement_UpdateDraft(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	sup := testutil.Supplier(t, db, "PT Sumber")
	cat := testutil.Category(t, db, "Umum")
	a := testutil.Product(t, db, cat.ID, "Gula", 15000, nil, 10)

	p, err := svc.Procurements.Create(ctx, CreateProcurementInput{
		SupplierID: sup.ID,
		Items:      []ProcurementItemInput{{ProductID: a.ID, Quantity: 2, UnitCost: 12000}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != models.ProcurementDraft {
		t.Fatalf("expected DRAFT, got %s", p.Status)
	}

	var se *StateError
	if _, err := svc.Procurements.Update(ctx, p.ID, UpdateProcurementInput{Status: statusPtr(models.ProcurementReceived)}); !errors.As(err, &se) {
		t.Errorf("DRAFT -> RECEIVED must be rejected, got %v", err)
	}

	items := []ProcurementItemInput{{ProductID: a.ID, Quantity: 4, UnitCost: 11000}}
	updated, err := svc.Procurements.Update(ctx, p.ID, UpdateProcurementInput{Items: &items})
	if err != nil {
		t.Fatalf("update items: %v", err)
	}
	if updated.TotalItems != 4 || updated.TotalAmount != 44000 || len(updated.Items) != 1 {
		t.Errorf("totals not recomputed: items=%d amount=%d", updated.TotalItems, updated.TotalAmount)
	}
	if got := testutil.Stock(t, db, a.ID); got != 10 {
		t.Errorf("draft update must not touch stock, got %d", got)
	}

	if err := svc.Procurements.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if _, err := svc.Procurements.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProcurement_CreateValidation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	sup := testutil.Supplier(t, db, "PT Sumber")

	tests := []struct {
		name string
		in   CreateProcurementInput
	}{
		{"unknown supplier", CreateProcurementInput{SupplierID: 999, Items: []ProcurementItemInput{{ProductID: 1, Quantity: 1}}}},
		{"unknown product", CreateProcurementInput{SupplierID: sup.ID, Items: []ProcurementItemInput{{ProductID: 999, Quantity: 1}}}},
		{"received at creation", CreateProcurementInput{SupplierID: sup.ID, Status: models.ProcurementReceived,
			Items: []ProcurementItemInput{{ProductID: 1, Quantity: 1}}}},
		{"no items", CreateProcurementInput{SupplierID: sup.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			if _, err := svc.Procurements.Create(ctx, tt.in); !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}
