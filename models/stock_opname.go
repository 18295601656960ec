package models

import "time"

type OpnameStatus string

const (
	OpnameDraft      OpnameStatus = "DRAFT"
	OpnameInProgress OpnameStatus = "IN_PROGRESS"
	OpnameCompleted  OpnameStatus = "COMPLETED"
	OpnameCancelled  OpnameStatus = "CANCELLED"
)

type StockOpname struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Number          string            `gorm:"uniqueIndex;size:40;not null" json:"number"` // SO-2026-000001
	Status          OpnameStatus      `gorm:"size:12;index;not null" json:"status"`
	Notes           string            `gorm:"size:255" json:"notes"`
	TotalItems      int               `gorm:"not null;default:0" json:"total_items"`
	CheckedItems    int               `gorm:"not null;default:0" json:"checked_items"`
	TotalDifference int               `gorm:"not null;default:0" json:"total_difference"`
	StartedDate     *time.Time        `json:"started_date"`
	CompletedDate   *time.Time        `json:"completed_date"`
	CreatedByID     *uint             `json:"created_by_id"`
	Items           []StockOpnameItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type StockOpnameItem struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	StockOpnameID uint     `gorm:"index;not null" json:"stock_opname_id"`
	ProductID     uint     `gorm:"not null" json:"product_id"`
	Product       *Product `json:"product,omitempty"`
	SystemStock   int      `gorm:"not null" json:"system_stock"`         // stok sistem saat opname dibuat
	PhysicalStock *int     `json:"physical_stock"`                       // hasil hitung fisik
	Difference    int      `gorm:"not null;default:0" json:"difference"` // physical - system
	IsChecked     bool     `gorm:"not null;default:false" json:"is_checked"`
	Notes         string   `gorm:"size:255" json:"notes"`
}
