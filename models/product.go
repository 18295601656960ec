package models

import "time"

type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:180;not null;index" json:"name"`
	SKU            *string   `gorm:"uniqueIndex;size:60" json:"sku"`
	Barcode        *string   `gorm:"uniqueIndex;size:60" json:"barcode"`
	Description    string    `gorm:"size:500" json:"description"`
	Price          int64     `gorm:"not null" json:"price"`           // harga jual per unit
	WholesalePrice *int64    `json:"wholesale_price"`                 // harga grosir / modal, opsional
	Stock          int       `gorm:"not null;default:0" json:"stock"` // stok sistem
	MinStock       int       `gorm:"not null;default:0" json:"min_stock"`
	IsActive       bool      `gorm:"default:true;index" json:"is_active"`
	CategoryID     uint      `gorm:"index;not null" json:"category_id"`
	Category       *Category `json:"category,omitempty"`
	UnitID         *uint     `json:"unit_id"`
	Unit           *Unit     `json:"unit,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	ProductInStock    = "in_stock"
	ProductLowStock   = "low_stock"
	ProductOutOfStock = "out_of_stock"
	ProductInactive   = "inactive"
)

// StockStatus dihitung dari stok saat ini, tidak disimpan.
func (p Product) StockStatus() string {
	switch {
	case !p.IsActive:
		return ProductInactive
	case p.Stock <= 0:
		return ProductOutOfStock
	case p.Stock <= p.MinStock:
		return ProductLowStock
	default:
		return ProductInStock
	}
}
