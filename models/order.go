package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentQRIS     PaymentMethod = "QRIS"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentEWallet  PaymentMethod = "EWALLET"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentQRIS, PaymentTransfer, PaymentEWallet:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Order adalah header transaksi kasir. Nilai uang dalam rupiah (tanpa desimal).
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;size:40;not null" json:"order_number"`
	Subtotal      int64         `gorm:"not null" json:"subtotal"`
	Tax           int64         `gorm:"not null;default:0" json:"tax"`
	Discount      int64         `gorm:"not null;default:0" json:"discount"`
	Total         int64         `gorm:"not null" json:"total"`
	AmountPaid    int64         `gorm:"not null;default:0" json:"amount_paid"`
	Change        int64         `gorm:"not null;default:0" json:"change"`
	PaymentMethod PaymentMethod `gorm:"size:20;index;not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null" json:"payment_status"`
	Status        OrderStatus   `gorm:"size:12;index;not null" json:"status"`
	CustomerID    *uint         `gorm:"index" json:"customer_id"`
	Customer      *Customer     `json:"customer,omitempty"`
	CashierID     uint          `gorm:"index;not null" json:"cashier_id"`
	Cashier       *User         `json:"cashier,omitempty"`
	ShiftID       *uint         `gorm:"index" json:"shift_id"`
	Notes         string        `gorm:"size:255" json:"notes"`
	Items         []OrderItem   `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem adalah snapshot harga saat checkout, bukan referensi harga produk terkini.
type OrderItem struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	OrderID        uint     `gorm:"index;not null" json:"order_id"`
	ProductID      uint     `gorm:"index;not null" json:"product_id"`
	Product        *Product `json:"product,omitempty"`
	ProductName    string   `gorm:"size:180" json:"product_name"`
	Quantity       int      `gorm:"not null" json:"quantity"`
	UnitPrice      int64    `gorm:"not null" json:"unit_price"`
	WholesalePrice *int64   `json:"wholesale_price"`
	Subtotal       int64    `gorm:"not null" json:"subtotal"` // quantity * unit_price
}
