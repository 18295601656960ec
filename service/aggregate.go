package service

import (
	"context"
	"sort"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultMarginRate dipakai kalau produk tidak punya harga grosir.
var DefaultMarginRate = decimal.New(3, -1)

var hundred = decimal.NewFromInt(100)

// ProfitPerUnit = price - wholesale kalau ada harga grosir, selain itu 30% dari price.
func ProfitPerUnit(price int64, wholesale *int64) decimal.Decimal {
	if wholesale != nil {
		return decimal.NewFromInt(price - *wholesale)
	}
	return decimal.NewFromInt(price).Mul(DefaultMarginRate)
}

type ProductSales struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     int64           `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
}

// Aggregate adalah ringkasan order COMPLETED dalam rentang [Start, End).
type Aggregate struct {
	Start             time.Time        `json:"start"`
	End               time.Time        `json:"end"`
	TotalTransactions int64            `json:"total_transactions"`
	TotalSales        int64            `json:"total_sales"`
	TotalProfit       decimal.Decimal  `json:"total_profit"`
	TotalCustomers    int64            `json:"total_customers"`
	TotalItemsSold    int64            `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	PaymentSales      map[string]int64 `json:"payment_sales"`
	PaymentCounts     map[string]int64 `json:"payment_counts"`
	Products          []ProductSales   `json:"products"` // urut sesuai TopProduct
	TopProduct        *ProductSales    `json:"top_product"`
}

// Totals memetakan aggregate ke kolom tabel statistik.
func (a Aggregate) Totals() models.StatsTotals {
	t := models.StatsTotals{
		TotalTransactions: a.TotalTransactions,
		TotalSales:        a.TotalSales,
		TotalProfit:       a.TotalProfit,
		TotalCustomers:    a.TotalCustomers,
		TotalItemsSold:    a.TotalItemsSold,
		AverageOrderValue: a.AverageOrderValue,
		PaymentSales:      a.PaymentSales,
	}
	if a.TopProduct != nil {
		id := a.TopProduct.ProductID
		t.TopProductID = &id
		t.TopProductName = a.TopProduct.ProductName
		t.TopProductQty = a.TopProduct.Quantity
	}
	return t
}

// Summarize menghitung aggregate dari order yang sudah dimuat beserta item-nya.
// Order selain COMPLETED diabaikan.
func Summarize(start, end time.Time, orders []models.Order) Aggregate {
	agg := Aggregate{
		Start:         start,
		End:           end,
		TotalProfit:   decimal.Zero,
		PaymentSales:  map[string]int64{},
		PaymentCounts: map[string]int64{},
	}

	customers := map[uint]struct{}{}
	byProduct := map[uint]*ProductSales{}

	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		agg.TotalTransactions++
		agg.TotalSales += o.Total
		agg.PaymentSales[string(o.PaymentMethod)] += o.Total
		agg.PaymentCounts[string(o.PaymentMethod)]++
		if o.CustomerID != nil {
			customers[*o.CustomerID] = struct{}{}
		}

		for _, it := range o.Items {
			qty := int64(it.Quantity)
			profit := ProfitPerUnit(it.UnitPrice, it.WholesalePrice).Mul(decimal.NewFromInt(qty))

			agg.TotalItemsSold += qty
			agg.TotalProfit = agg.TotalProfit.Add(profit)

			ps, ok := byProduct[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, ProductName: it.ProductName, Profit: decimal.Zero}
				byProduct[it.ProductID] = ps
			}
			ps.Quantity += qty
			ps.Revenue += it.Subtotal
			ps.Profit = ps.Profit.Add(profit)
		}
	}

	agg.TotalCustomers = int64(len(customers))
	agg.AverageOrderValue = decimal.Zero
	if agg.TotalTransactions > 0 {
		agg.AverageOrderValue = decimal.NewFromInt(agg.TotalSales).
			Div(decimal.NewFromInt(agg.TotalTransactions)).Round(2)
	}

	agg.Products = make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		agg.Products = append(agg.Products, *ps)
	}
	sortByQuantity(agg.Products)
	if len(agg.Products) > 0 {
		top := agg.Products[0]
		agg.TopProduct = &top
	}
	return agg
}

// sortByQuantity: quantity terbanyak, lalu revenue terbesar, lalu product id terkecil.
func sortByQuantity(rows []ProductSales) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.ProductID < b.ProductID
	})
}

// sortByRevenue: revenue terbesar, lalu quantity terbanyak, lalu product id terkecil.
func sortByRevenue(rows []ProductSales) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.ProductID < b.ProductID
	})
}

// Aggregator adalah satu-satunya jalur agregasi; statistik bucket dan laporan rentang memakainya.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Range mengagregasi order COMPLETED dengan created_at di [start, end).
func (a *Aggregator) Range(ctx context.Context, start, end time.Time) (Aggregate, error) {
	orders, err := a.load(ctx, start, end)
	if err != nil {
		return Aggregate{}, err
	}
	return Summarize(start, end, orders), nil
}

func (a *Aggregator) load(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := a.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderCompleted, start.UTC(), end.UTC()).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

// CalculateChange = (current - previous) / previous * 100.
// Previous 0: hasil 0 kalau current juga 0, selain itu 100.
func CalculateChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
