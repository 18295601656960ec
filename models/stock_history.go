package models

import "time"

type StockReason string

const (
	StockSale        StockReason = "SALE"
	StockSaleCancel  StockReason = "SALE_CANCEL"
	StockProcurement StockReason = "PROCUREMENT"
	StockOpnameAdj   StockReason = "OPNAME"
)

// StockHistory mencatat setiap mutasi stok produk.
type StockHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ProductID uint        `gorm:"index;not null" json:"product_id"`
	OldStock  int         `json:"old_stock"`
	NewStock  int         `json:"new_stock"`
	Delta     int         `json:"delta"`
	Reason    StockReason `gorm:"size:20;not null" json:"reason"`
	RefType   string      `gorm:"size:30" json:"ref_type"`
	RefID     uint        `json:"ref_id"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}
