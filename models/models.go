package models

// All mengembalikan semua model untuk AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Unit{},
		&Supplier{},
		&Customer{},
		&Setting{},
		&Product{},
		&StockHistory{},
		&Shift{},
		&Order{},
		&OrderItem{},
		&DailyStats{},
		&WeeklyStats{},
		&MonthlyStats{},
		&Procurement{},
		&ProcurementItem{},
		&StockOpname{},
		&StockOpnameItem{},
	}
}
