package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportType string

const (
	ReportDaily    ReportType = "daily"
	ReportSummary  ReportType = "summary"
	ReportProducts ReportType = "products"
	ReportPayments ReportType = "payments"
)

const (
	defaultReportDays     = 30
	defaultTopProductsLen = 10
)

// DateRange adalah rentang tanggal inklusif (From..To) dalam zona waktu toko.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayReport punya bentuk yang sama dengan bucket statistik harian.
type DayReport struct {
	Date              string           `json:"date"`
	TotalTransactions int64            `json:"total_transactions"`
	TotalSales        int64            `json:"total_sales"`
	TotalProfit       decimal.Decimal  `json:"total_profit"`
	TotalCustomers    int64            `json:"total_customers"`
	TotalItemsSold    int64            `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	PaymentSales      map[string]int64 `json:"payment_sales"`
	PaymentCounts     map[string]int64 `json:"payment_counts"`
	TopProduct        *ProductSales    `json:"top_product"`
}

type SummaryTotals struct {
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	TotalRevenue      int64           `json:"total_revenue"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalItemsSold    int64           `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
}

type SummaryReport struct {
	SummaryTotals
	Previous   SummaryTotals              `json:"previous"`
	Comparison map[string]decimal.Decimal `json:"comparison"`
}

type ProductReportRow struct {
	Rank int `json:"rank"`
	ProductSales
}

type PaymentReportRow struct {
	Method       string          `json:"method"`
	Amount       int64           `json:"amount"`
	Transactions int64           `json:"transactions"`
	Percentage   decimal.Decimal `json:"percentage"`
}

type ReportService struct {
	agg *Aggregator
	loc *time.Location
	now func() time.Time
}

func NewReportService(agg *Aggregator, loc *time.Location, now func() time.Time) *ReportService {
	return &ReportService{agg: agg, loc: loc, now: now}
}

// ResolveRange mengisi default 30 hari terakhir dan memvalidasi urutan tanggal.
func (s *ReportService) ResolveRange(from, to *time.Time) (DateRange, error) {
	today := dayStart(s.now(), s.loc)
	r := DateRange{From: today.AddDate(0, 0, -(defaultReportDays - 1)), To: today}
	if to != nil {
		r.To = dateIn(*to, s.loc)
	}
	if from != nil {
		r.From = dateIn(*from, s.loc)
	} else if to != nil {
		r.From = r.To.AddDate(0, 0, -(defaultReportDays - 1))
	}
	if r.From.After(r.To) {
		return DateRange{}, invalid("Tanggal mulai tidak boleh setelah tanggal akhir")
	}
	return r, nil
}

// bounds: [From 00:00, To+1 00:00)
func (r DateRange) bounds() (time.Time, time.Time) {
	return r.From, r.To.AddDate(0, 0, 1)
}

func (r DateRange) days() int {
	start, end := r.bounds()
	return int(end.Sub(start).Hours()/24 + 0.5)
}

// previous: rentang dengan panjang sama tepat sebelum r.
func (r DateRange) previous() DateRange {
	n := r.days()
	return DateRange{From: r.From.AddDate(0, 0, -n), To: r.From.AddDate(0, 0, -1)}
}

func (s *ReportService) Build(ctx context.Context, t ReportType, r DateRange, limit int) (any, error) {
	switch t {
	case ReportDaily:
		return s.Daily(ctx, r)
	case ReportSummary:
		return s.Summary(ctx, r)
	case ReportProducts:
		return s.Products(ctx, r, limit)
	case ReportPayments:
		return s.Payments(ctx, r)
	}
	return nil, invalid("Tipe laporan tidak valid")
}

// Daily: satu baris per hari, terbaru lebih dulu.
func (s *ReportService) Daily(ctx context.Context, r DateRange) ([]DayReport, error) {
	start, end := r.bounds()
	orders, err := s.agg.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	perDay := map[string][]models.Order{}
	for _, o := range orders {
		key := o.CreatedAt.In(s.loc).Format("2006-01-02")
		perDay[key] = append(perDay[key], o)
	}

	out := make([]DayReport, 0, r.days())
	for d := r.To; !d.Before(r.From); d = d.AddDate(0, 0, -1) {
		key := d.Format("2006-01-02")
		agg := Summarize(d, d.AddDate(0, 0, 1), perDay[key])
		out = append(out, DayReport{
			Date:              key,
			TotalTransactions: agg.TotalTransactions,
			TotalSales:        agg.TotalSales,
			TotalProfit:       agg.TotalProfit,
			TotalCustomers:    agg.TotalCustomers,
			TotalItemsSold:    agg.TotalItemsSold,
			AverageOrderValue: agg.AverageOrderValue,
			PaymentSales:      agg.PaymentSales,
			PaymentCounts:     agg.PaymentCounts,
			TopProduct:        agg.TopProduct,
		})
	}
	return out, nil
}

func (s *ReportService) Summary(ctx context.Context, r DateRange) (SummaryReport, error) {
	cur, err := s.rangeTotals(ctx, r)
	if err != nil {
		return SummaryReport{}, err
	}
	prev, err := s.rangeTotals(ctx, r.previous())
	if err != nil {
		return SummaryReport{}, err
	}

	n := decimal.NewFromInt
	return SummaryReport{
		SummaryTotals: cur,
		Previous:      prev,
		Comparison: map[string]decimal.Decimal{
			"revenue":             CalculateChange(n(cur.TotalRevenue), n(prev.TotalRevenue)),
			"transactions":        CalculateChange(n(cur.TotalTransactions), n(prev.TotalTransactions)),
			"profit":              CalculateChange(cur.TotalProfit, prev.TotalProfit),
			"customers":           CalculateChange(n(cur.TotalCustomers), n(prev.TotalCustomers)),
			"average_order_value": CalculateChange(cur.AverageOrderValue, prev.AverageOrderValue),
		},
	}, nil
}

func (s *ReportService) rangeTotals(ctx context.Context, r DateRange) (SummaryTotals, error) {
	start, end := r.bounds()
	agg, err := s.agg.Range(ctx, start, end)
	if err != nil {
		return SummaryTotals{}, err
	}
	return SummaryTotals{
		StartDate:         r.From.Format("2006-01-02"),
		EndDate:           r.To.Format("2006-01-02"),
		TotalRevenue:      agg.TotalSales,
		TotalTransactions: agg.TotalTransactions,
		TotalProfit:       agg.TotalProfit,
		TotalCustomers:    agg.TotalCustomers,
		TotalItemsSold:    agg.TotalItemsSold,
		AverageOrderValue: agg.AverageOrderValue,
		ProfitMargin:      percentOf(agg.TotalProfit, decimal.NewFromInt(agg.TotalSales)),
	}, nil
}

// Products: top-N produk berdasarkan revenue.
func (s *ReportService) Products(ctx context.Context, r DateRange, limit int) ([]ProductReportRow, error) {
	if limit <= 0 {
		limit = defaultTopProductsLen
	}
	start, end := r.bounds()
	agg, err := s.agg.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := append([]ProductSales(nil), agg.Products...)
	sortByRevenue(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]ProductReportRow, 0, len(rows))
	for i, ps := range rows {
		out = append(out, ProductReportRow{Rank: i + 1, ProductSales: ps})
	}
	return out, nil
}

func (s *ReportService) Payments(ctx context.Context, r DateRange) ([]PaymentReportRow, error) {
	start, end := r.bounds()
	agg, err := s.agg.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromInt(agg.TotalSales)
	out := make([]PaymentReportRow, 0, len(agg.PaymentSales))
	for method, amount := range agg.PaymentSales {
		out = append(out, PaymentReportRow{
			Method:       method,
			Amount:       amount,
			Transactions: agg.PaymentCounts[method],
			Percentage:   percentOf(decimal.NewFromInt(amount), total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

const exportSheet = "Laporan"

// Export menulis laporan ke workbook xlsx. Summary tidak didukung karena bukan tabel.
func (s *ReportService) Export(ctx context.Context, t ReportType, r DateRange, limit int) (*excelize.File, error) {
	var (
		header []any
		rows   [][]any
	)
	switch t {
	case ReportDaily:
		data, err := s.Daily(ctx, r)
		if err != nil {
			return nil, err
		}
		header = []any{"Tanggal", "Transaksi", "Penjualan", "Profit", "Customer", "Item Terjual", "Rata-rata Order",
			"Produk Terlaris", "Penjualan per Metode"}
		for _, d := range data {
			top := "-"
			if d.TopProduct != nil {
				top = fmt.Sprintf("%s (%d)", d.TopProduct.ProductName, d.TopProduct.Quantity)
			}
			rows = append(rows, []any{d.Date, d.TotalTransactions, d.TotalSales, d.TotalProfit.InexactFloat64(),
				d.TotalCustomers, d.TotalItemsSold, d.AverageOrderValue.InexactFloat64(), top, paymentBreakdown(d.PaymentSales)})
		}
	case ReportProducts:
		data, err := s.Products(ctx, r, limit)
		if err != nil {
			return nil, err
		}
		header = []any{"Peringkat", "Produk", "Qty", "Revenue", "Profit"}
		for _, p := range data {
			rows = append(rows, []any{p.Rank, p.ProductName, p.Quantity, p.Revenue, p.Profit.InexactFloat64()})
		}
	case ReportPayments:
		data, err := s.Payments(ctx, r)
		if err != nil {
			return nil, err
		}
		header = []any{"Metode", "Transaksi", "Jumlah", "Persentase"}
		for _, p := range data {
			rows = append(rows, []any{p.Method, p.Transactions, p.Amount, p.Percentage.InexactFloat64()})
		}
	default:
		return nil, invalid("Tipe laporan tidak bisa diekspor")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		row := row
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// paymentBreakdown: "CASH: 5500; QRIS: 22000", urut nama metode.
func paymentBreakdown(sales map[string]int64) string {
	if len(sales) == 0 {
		return "-"
	}
	methods := make([]string, 0, len(sales))
	for m := range sales {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	parts := make([]string, 0, len(methods))
	for _, m := range methods {
		parts = append(parts, fmt.Sprintf("%s: %d", m, sales[m]))
	}
	return strings.Join(parts, "; ")
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dateIn memakai tanggal kalender t (hasil parse "2006-01-02") di loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
