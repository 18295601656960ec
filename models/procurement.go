package models

import "time"

type ProcurementStatus string

const (
	ProcurementDraft     ProcurementStatus = "DRAFT"
	ProcurementOrdered   ProcurementStatus = "ORDERED"
	ProcurementReceived  ProcurementStatus = "RECEIVED"
	ProcurementCancelled ProcurementStatus = "CANCELLED"
)

// Procurement = purchase order ke supplier.
type Procurement struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Number       string            `gorm:"uniqueIndex;size:40;not null" json:"number"` // PO-2026-000001
	SupplierID   uint              `gorm:"index;not null" json:"supplier_id"`
	Supplier     *Supplier         `json:"supplier,omitempty"`
	Status       ProcurementStatus `gorm:"size:12;index;not null" json:"status"`
	OrderDate    *time.Time        `json:"order_date"`
	ExpectedDate *time.Time        `json:"expected_date"`
	ReceivedDate *time.Time        `json:"received_date"`
	TotalItems   int               `gorm:"not null;default:0" json:"total_items"`
	TotalAmount  int64             `gorm:"not null;default:0" json:"total_amount"`
	Notes        string            `gorm:"size:255" json:"notes"`
	CreatedByID  *uint             `json:"created_by_id"`
	Items        []ProcurementItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ProcurementItem struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	ProcurementID uint     `gorm:"index;not null" json:"procurement_id"`
	ProductID     uint     `gorm:"not null" json:"product_id"`
	Product       *Product `json:"product,omitempty"`
	Quantity      int      `gorm:"not null" json:"quantity"`
	UnitCost      int64    `gorm:"not null" json:"unit_cost"`
	Subtotal      int64    `gorm:"not null" json:"subtotal"`
}
