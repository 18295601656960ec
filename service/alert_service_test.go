package service

import (
	"context"
	"testing"

	"github.com/nzsnyn/pos-sub000/testutil"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		stock    int
		typ      AlertType
		priority AlertPriority
		ok       bool
	}{
		{0, AlertOutOfStock, PriorityCritical, true},
		{1, AlertLowStock, PriorityHigh, true},
		{5, AlertLowStock, PriorityHigh, true},
		{6, AlertLowStock, PriorityMedium, true},
		{10, AlertLowStock, PriorityMedium, true},
		{11, "", "", false},
	}
	for _, tt := range tests {
		typ, prio, ok := ClassifyStock(tt.stock)
		if typ != tt.typ || prio != tt.priority || ok != tt.ok {
			t.Errorf("stock %d: expected (%s, %s, %v), got (%s, %s, %v)", tt.stock, tt.typ, tt.priority, tt.ok, typ, prio, ok)
		}
	}
}

func TestAlertScan_DerivedFromCurrentStock(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	cat := testutil.Category(t, db, "Umum")
	habis := testutil.Product(t, db, cat.ID, "Habis", 1000, nil, 0)
	testutil.Product(t, db, cat.ID, "Tipis", 1000, nil, 3)
	testutil.Product(t, db, cat.ID, "Aman", 1000, nil, 50)
	off := testutil.Product(t, db, cat.ID, "Nonaktif", 1000, nil, 0)
	db.Model(&off).Update("is_active", false)

	alerts, err := svc.Alerts.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d (%+v)", len(alerts), alerts)
	}
	if alerts[0].ProductID != habis.ID || alerts[0].Priority != PriorityCritical {
		t.Errorf("unexpected first alert %+v", alerts[0])
	}
	counts := CountByPriority(alerts)
	if counts[PriorityCritical] != 1 || counts[PriorityHigh] != 1 || counts[PriorityMedium] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}

	// restock menghilangkan alert tanpa perlu resolve manual
	db.Model(&habis).Update("stock", 40)
	alerts, err = svc.Alerts.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ProductName != "Tipis" {
		t.Errorf("expected only Tipis after restock, got %+v", alerts)
	}
}
