package models

import "time"

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

type Shift struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	CashierID         uint        `gorm:"index;not null" json:"cashier_id"`
	Cashier           *User       `json:"cashier,omitempty"`
	Status            ShiftStatus `gorm:"size:10;index;not null" json:"status"`
	OpeningCash       int64       `gorm:"not null;default:0" json:"opening_cash"`
	ClosingCash       *int64      `json:"closing_cash"`
	ExpectedCash      *int64      `json:"expected_cash"`
	CashDifference    *int64      `json:"cash_difference"`
	TotalSales        int64       `gorm:"not null;default:0" json:"total_sales"`
	TotalTransactions int64       `gorm:"not null;default:0" json:"total_transactions"`
	Notes             string      `gorm:"size:255" json:"notes"`
	OpenedAt          time.Time   `json:"opened_at"`
	ClosedAt          *time.Time  `json:"closed_at"`
}
