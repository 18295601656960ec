package service

import (
	"context"

	"github.com/nzsnyn/pos-sub000/models"

	"gorm.io/gorm"
)

// LowStockThreshold: produk aktif dengan stok <= nilai ini dianggap perlu perhatian.
const LowStockThreshold = 10

type AlertType string

const (
	AlertLowStock   AlertType = "LOW_STOCK"
	AlertOutOfStock AlertType = "OUT_OF_STOCK"
)

type AlertPriority string

const (
	PriorityMedium   AlertPriority = "MEDIUM"
	PriorityHigh     AlertPriority = "HIGH"
	PriorityCritical AlertPriority = "CRITICAL"
)

// InventoryAlert tidak disimpan; selalu diturunkan dari stok saat ini.
type InventoryAlert struct {
	ProductID   uint          `json:"product_id"`
	ProductName string        `json:"product_name"`
	SKU         *string       `json:"sku"`
	Stock       int           `json:"stock"`
	MinStock    int           `json:"min_stock"`
	Type        AlertType     `json:"type"`
	Priority    AlertPriority `json:"priority"`
}

// ClassifyStock: 0 -> OUT_OF_STOCK/CRITICAL, <=5 -> HIGH, <=10 -> MEDIUM. ok=false kalau stok aman.
func ClassifyStock(stock int) (AlertType, AlertPriority, bool) {
	switch {
	case stock <= 0:
		return AlertOutOfStock, PriorityCritical, true
	case stock <= 5:
		return AlertLowStock, PriorityHigh, true
	case stock <= LowStockThreshold:
		return AlertLowStock, PriorityMedium, true
	}
	return "", "", false
}

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// Scan: produk aktif dengan stok <= 10, stok paling sedikit lebih dulu.
func (s *AlertService) Scan(ctx context.Context) ([]InventoryAlert, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("is_active = ? AND stock <= ?", true, LowStockThreshold).
		Order("stock ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}

	alerts := make([]InventoryAlert, 0, len(products))
	for _, p := range products {
		typ, prio, ok := ClassifyStock(p.Stock)
		if !ok {
			continue
		}
		alerts = append(alerts, InventoryAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
			Type:        typ,
			Priority:    prio,
		})
	}
	return alerts, nil
}

// CountByPriority untuk ringkasan di dashboard.
func CountByPriority(alerts []InventoryAlert) map[AlertPriority]int {
	out := map[AlertPriority]int{PriorityCritical: 0, PriorityHigh: 0, PriorityMedium: 0}
	for _, a := range alerts {
		out[a.Priority]++
	}
	return out
}
