package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsTotals dipakai bersama oleh DailyStats, WeeklyStats dan MonthlyStats.
type StatsTotals struct {
	TotalTransactions int64            `gorm:"not null;default:0" json:"total_transactions"`
	TotalSales        int64            `gorm:"not null;default:0" json:"total_sales"`
	TotalProfit       decimal.Decimal  `gorm:"type:decimal(20,2)" json:"total_profit"`
	TotalCustomers    int64            `gorm:"not null;default:0" json:"total_customers"`
	TotalItemsSold    int64            `gorm:"not null;default:0" json:"total_items_sold"`
	AverageOrderValue decimal.Decimal  `gorm:"type:decimal(20,2)" json:"average_order_value"`
	PaymentSales      map[string]int64 `gorm:"serializer:json;type:text" json:"payment_sales"`
	TopProductID      *uint            `json:"top_product_id"`
	TopProductName    string           `gorm:"size:180" json:"top_product_name"`
	TopProductQty     int64            `json:"top_product_qty"`
}

type DailyStats struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"uniqueIndex;not null" json:"date"`
	StatsTotals `gorm:"embedded"`
	ComputedAt  time.Time `json:"computed_at"`
}

type WeeklyStats struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WeekStart   time.Time `gorm:"uniqueIndex;not null" json:"week_start"`
	WeekEnd     time.Time `gorm:"not null" json:"week_end"`
	StatsTotals `gorm:"embedded"`
	ComputedAt  time.Time `json:"computed_at"`
}

type MonthlyStats struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	Year        int  `gorm:"uniqueIndex:idx_monthly_stats_period;not null" json:"year"`
	Month       int  `gorm:"uniqueIndex:idx_monthly_stats_period;not null" json:"month"`
	StatsTotals `gorm:"embedded"`
	ComputedAt  time.Time `json:"computed_at"`
}
