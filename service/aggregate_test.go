package service

import (
	"testing"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"github.com/shopspring/decimal"
)

func TestProfitPerUnit(t *testing.T) {
	wholesale := int64(18000)
	tests := []struct {
		name      string
		price     int64
		wholesale *int64
		qty       int64
		want      string
	}{
		{"with wholesale price", 25000, &wholesale, 3, "21000"},
		{"default margin", 10000, nil, 2, "6000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitPerUnit(tt.price, tt.wholesale).Mul(decimal.NewFromInt(tt.qty))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		cur, prev int64
		want      string
	}{
		{0, 0, "0"},
		{50, 0, "100"},
		{110, 100, "10"},
		{90, 100, "-10"},
		{1, 3, "-66.67"},
	}
	for _, tt := range tests {
		got := CalculateChange(decimal.NewFromInt(tt.cur), decimal.NewFromInt(tt.prev))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("CalculateChange(%d, %d): expected %s, got %s", tt.cur, tt.prev, tt.want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	cust := uint(7)
	wholesale := int64(18000)
	orders := []models.Order{
		{
			Status: models.OrderCompleted, Total: 82500, PaymentMethod: models.PaymentCash, CustomerID: &cust,
			Items: []models.OrderItem{{ProductID: 1, ProductName: "Kopi", Quantity: 3, UnitPrice: 25000, WholesalePrice: &wholesale, Subtotal: 75000}},
		},
		{
			Status: models.OrderCompleted, Total: 22000, PaymentMethod: models.PaymentQRIS, CustomerID: &cust,
			Items: []models.OrderItem{{ProductID: 2, ProductName: "Teh", Quantity: 2, UnitPrice: 10000, Subtotal: 20000}},
		},
		{
			Status: models.OrderCancelled, Total: 99999, PaymentMethod: models.PaymentCash,
			Items: []models.OrderItem{{ProductID: 2, ProductName: "Teh", Quantity: 9, UnitPrice: 10000, Subtotal: 90000}},
		},
	}

	agg := Summarize(time.Time{}, time.Time{}, orders)

	if agg.TotalTransactions != 2 {
		t.Errorf("expected 2 transactions, got %d", agg.TotalTransactions)
	}
	if agg.TotalSales != 104500 {
		t.Errorf("expected sales 104500, got %d", agg.TotalSales)
	}
	if !agg.TotalProfit.Equal(decimal.NewFromInt(27000)) {
		t.Errorf("expected profit 27000, got %s", agg.TotalProfit)
	}
	if agg.TotalCustomers != 1 {
		t.Errorf("expected 1 distinct customer, got %d", agg.TotalCustomers)
	}
	if agg.TotalItemsSold != 5 {
		t.Errorf("expected 5 items sold, got %d", agg.TotalItemsSold)
	}
	if !agg.AverageOrderValue.Equal(decimal.NewFromInt(52250)) {
		t.Errorf("expected AOV 52250, got %s", agg.AverageOrderValue)
	}
	if agg.PaymentSales["CASH"] != 82500 || agg.PaymentSales["QRIS"] != 22000 {
		t.Errorf("unexpected payment sales %v", agg.PaymentSales)
	}
	if agg.TopProduct == nil || agg.TopProduct.ProductID != 1 {
		t.Fatalf("expected top product 1, got %+v", agg.TopProduct)
	}
}

func TestSummarize_Empty(t *testing.T) {
	agg := Summarize(time.Time{}, time.Time{}, nil)
	if !agg.AverageOrderValue.IsZero() {
		t.Errorf("expected AOV 0, got %s", agg.AverageOrderValue)
	}
	if agg.TopProduct != nil {
		t.Errorf("expected no top product, got %+v", agg.TopProduct)
	}
}

func TestSortByQuantity_TieBreak(t *testing.T) {
	rows := []ProductSales{
		{ProductID: 3, Quantity: 5, Revenue: 1000},
		{ProductID: 2, Quantity: 5, Revenue: 2000},
		{ProductID: 1, Quantity: 5, Revenue: 1000},
		{ProductID: 4, Quantity: 6, Revenue: 10},
	}
	sortByQuantity(rows)

	want := []uint{4, 2, 1, 3}
	for i, id := range want {
		if rows[i].ProductID != id {
			t.Fatalf("position %d: expected product %d, got %d (%+v)", i, id, rows[i].ProductID, rows)
		}
	}
}
