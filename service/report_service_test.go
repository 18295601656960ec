package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportFixture struct {
	svc *Services
	db  *gorm.DB
	r   DateRange
}

// 13-15 Okt: 38.500 dari 3 order; 10-12 Okt (rentang sebelumnya): 11.000.
func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	svc, db := newTestServices(t)
	cashier := testutil.Cashier(t, db, "kasir1")
	cat := testutil.Category(t, db, "Umum")
	a := testutil.Product(t, db, cat.ID, "Produk A", 10000, nil, 100)
	b := testutil.Product(t, db, cat.ID, "Produk B", 20000, testutil.Int64(15000), 100)
	c := testutil.Product(t, db, cat.ID, "Produk C", 5000, nil, 100)
	cust := testutil.Customer(t, db, "Budi")

	seedOrder(t, db, cashier.ID, day(11, 12), models.PaymentCash, nil, line{a, 1})
	seedOrder(t, db, cashier.ID, day(13, 12), models.PaymentCash, &cust.ID, line{a, 1})
	seedOrder(t, db, cashier.ID, day(15, 8), models.PaymentQRIS, &cust.ID, line{b, 1})
	seedOrder(t, db, cashier.ID, day(15, 9), models.PaymentCash, nil, line{c, 1})

	from := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	r, err := svc.Reports.ResolveRange(&from, &to)
	if err != nil {
		t.Fatalf("resolve range: %v", err)
	}
	return reportFixture{svc: svc, db: db, r: r}
}

func TestResolveRange(t *testing.T) {
	svc, _ := newTestServices(t)

	r, err := svc.Reports.ResolveRange(nil, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !r.To.Equal(day(15, 0)) || !r.From.Equal(time.Date(2026, 9, 16, 0, 0, 0, 0, wib)) {
		t.Errorf("expected last 30 days, got %s..%s", r.From, r.To)
	}

	from := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)
	var ve *ValidationError
	if _, err := svc.Reports.ResolveRange(&from, &to); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for reversed range, got %v", err)
	}
}

func TestReportDaily_MostRecentFirst(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.Reports.Daily(context.Background(), f.r)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	want := []struct {
		date  string
		tx    int64
		sales int64
	}{
		{"2026-10-15", 2, 27500},
		{"2026-10-14", 0, 0},
		{"2026-10-13", 1, 11000},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Date != w.date || rows[i].TotalTransactions != w.tx || rows[i].TotalSales != w.sales {
			t.Errorf("row %d: expected %+v, got %+v", i, w, rows[i])
		}
	}

	// bentuk per hari sama dengan bucket harian: metode bayar dan produk terlaris
	today := rows[0]
	if today.PaymentSales["QRIS"] != 22000 || today.PaymentSales["CASH"] != 5500 {
		t.Errorf("unexpected payment sales %v", today.PaymentSales)
	}
	if today.PaymentCounts["QRIS"] != 1 || today.PaymentCounts["CASH"] != 1 {
		t.Errorf("unexpected payment counts %v", today.PaymentCounts)
	}
	// qty sama (1 vs 1), revenue B lebih besar
	if today.TopProduct == nil || today.TopProduct.ProductName != "Produk B" {
		t.Errorf("expected Produk B as top product, got %+v", today.TopProduct)
	}
	if rows[1].TopProduct != nil || len(rows[1].PaymentSales) != 0 {
		t.Errorf("empty day must have no top product or payments, got %+v", rows[1])
	}
	if rows[2].TopProduct == nil || rows[2].TopProduct.ProductName != "Produk A" {
		t.Errorf("expected Produk A on 13 Oct, got %+v", rows[2].TopProduct)
	}
}

func TestReportSummary(t *testing.T) {
	f := newReportFixture(t)

	rep, err := f.svc.Reports.Summary(context.Background(), f.r)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if rep.TotalRevenue != 38500 || rep.TotalTransactions != 3 {
		t.Errorf("unexpected totals %+v", rep.SummaryTotals)
	}
	// 3000 + 5000 + 1500
	if !rep.TotalProfit.Equal(decimal.NewFromInt(9500)) {
		t.Errorf("expected profit 9500, got %s", rep.TotalProfit)
	}
	if got := rep.ProfitMargin.String(); got != "24.68" {
		t.Errorf("expected margin 24.68, got %s", got)
	}
	if got := rep.AverageOrderValue.String(); got != "12833.33" {
		t.Errorf("expected AOV 12833.33, got %s", got)
	}
	if rep.TotalCustomers != 1 {
		t.Errorf("expected 1 customer, got %d", rep.TotalCustomers)
	}
	if rep.Previous.StartDate != "2026-10-10" || rep.Previous.EndDate != "2026-10-12" {
		t.Errorf("unexpected previous range %s..%s", rep.Previous.StartDate, rep.Previous.EndDate)
	}
	if rep.Previous.TotalRevenue != 11000 {
		t.Errorf("expected previous revenue 11000, got %d", rep.Previous.TotalRevenue)
	}
	if got := rep.Comparison["revenue"].String(); got != "250" {
		t.Errorf("expected revenue change 250, got %s", got)
	}
}

func TestReportProducts_TopByRevenue(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.Reports.Products(context.Background(), f.r, 2)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ProductName != "Produk B" || rows[0].Rank != 1 || rows[0].Revenue != 20000 {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].ProductName != "Produk A" || rows[1].Rank != 2 {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}

func TestReportPayments_Percentages(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.Reports.Payments(context.Background(), f.r)
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(rows))
	}
	if rows[0].Method != "QRIS" || rows[0].Amount != 22000 || rows[0].Percentage.String() != "57.14" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Method != "CASH" || rows[1].Transactions != 2 || rows[1].Percentage.String() != "42.86" {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}

func TestReportBuild_UnknownType(t *testing.T) {
	f := newReportFixture(t)
	var ve *ValidationError
	if _, err := f.svc.Reports.Build(context.Background(), ReportType("weird"), f.r, 0); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestReportExport(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	wb, err := f.svc.Reports.Export(ctx, ReportDaily, f.r, 0)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 days, got %d rows", len(rows))
	}
	if rows[0][0] != "Tanggal" || rows[1][0] != "2026-10-15" {
		t.Errorf("unexpected sheet content %v", rows[:2])
	}
	if len(rows[1]) < 9 || rows[1][7] != "Produk B (1)" || rows[1][8] != "CASH: 5500; QRIS: 22000" {
		t.Errorf("unexpected top product / payment columns %v", rows[1])
	}

	var ve *ValidationError
	if _, err := f.svc.Reports.Export(ctx, ReportSummary, f.r, 0); !errors.As(err, &ve) {
		t.Errorf("summary export must be rejected, got %v", err)
	}
}
