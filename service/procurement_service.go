package service

import (
	"context"
	"errors"
	"time"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/utils"

	"gorm.io/gorm"
)

type ProcurementItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	UnitCost  int64 `json:"unit_cost" binding:"gte=0"`
}

type CreateProcurementInput struct {
	SupplierID   uint                     `json:"supplier_id" binding:"required"`
	Status       models.ProcurementStatus `json:"status"`
	ExpectedDate *time.Time               `json:"expected_date"`
	Notes        string                   `json:"notes" binding:"max=255"`
	CreatedByID  *uint                    `json:"created_by_id"`
	Items        []ProcurementItemInput   `json:"items" binding:"required,min=1,dive"`
}

// UpdateProcurementInput: field nil berarti tidak diubah. Items kalau dikirim menggantikan semua item.
type UpdateProcurementInput struct {
	SupplierID   *uint                     `json:"supplier_id"`
	Status       *models.ProcurementStatus `json:"status"`
	ExpectedDate *time.Time                `json:"expected_date"`
	Notes        *string                   `json:"notes" binding:"omitempty,max=255"`
	Items        *[]ProcurementItemInput   `json:"items" binding:"omitempty,min=1,dive"`
}

var procurementTransitions = map[models.ProcurementStatus][]models.ProcurementStatus{
	models.ProcurementDraft:   {models.ProcurementDraft, models.ProcurementOrdered, models.ProcurementCancelled},
	models.ProcurementOrdered: {models.ProcurementOrdered, models.ProcurementReceived, models.ProcurementCancelled},
}

func canMoveProcurement(from, to models.ProcurementStatus) bool {
	for _, s := range procurementTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type ProcurementService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProcurementService(db *gorm.DB, now func() time.Time) *ProcurementService {
	return &ProcurementService{db: db, now: now}
}

type ProcurementFilter struct {
	Status     string
	SupplierID *uint
	Page       int
	PageSize   int
}

func (s *ProcurementService) List(ctx context.Context, f ProcurementFilter) ([]models.Procurement, Pagination, error) {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)
	q := s.db.WithContext(ctx).Model(&models.Procurement{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	var rows []models.Procurement
	if err := q.Preload("Supplier").Order("id DESC").
		Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).
		Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}
	return rows, newPagination(f.Page, f.PageSize, total), nil
}

func (s *ProcurementService) Get(ctx context.Context, id uint) (*models.Procurement, error) {
	var p models.Procurement
	if err := s.db.WithContext(ctx).
		Preload("Supplier").Preload("Items.Product").
		First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *ProcurementService) Create(ctx context.Context, in CreateProcurementInput) (*models.Procurement, error) {
	status := in.Status
	if status == "" {
		status = models.ProcurementDraft
	}
	if status != models.ProcurementDraft && status != models.ProcurementOrdered {
		return nil, invalid("Status awal procurement harus DRAFT atau ORDERED")
	}

	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := supplierExists(tx, in.SupplierID); err != nil {
			return err
		}
		items, totalItems, totalAmount, err := buildProcurementItems(tx, in.Items)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Procurement{}).Count(&count).Error; err != nil {
			return err
		}
		now := s.now().UTC()
		p := models.Procurement{
			Number:       utils.GenDocCode("PO", count+1, now),
			SupplierID:   in.SupplierID,
			Status:       status,
			ExpectedDate: in.ExpectedDate,
			TotalItems:   totalItems,
			TotalAmount:  totalAmount,
			Notes:        in.Notes,
			CreatedByID:  in.CreatedByID,
			Items:        items,
		}
		if status == models.ProcurementOrdered {
			p.OrderDate = &now
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update menghitung ulang total dari item yang dikirim. Transisi ke RECEIVED menambah stok tepat sekali.
func (s *ProcurementService) Update(ctx context.Context, id uint, in UpdateProcurementInput) (*models.Procurement, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Procurement
		if err := tx.Clauses(clauseUpdateLock()).Preload("Items").First(&p, id).Error; err != nil {
			return notFound(err)
		}
		switch p.Status {
		case models.ProcurementReceived:
			return &StateError{Msg: "Procurement yang sudah diterima tidak dapat diubah"}
		case models.ProcurementCancelled:
			return &StateError{Msg: "Procurement yang sudah dibatalkan tidak dapat diubah"}
		}

		target := p.Status
		if in.Status != nil {
			target = *in.Status
		}
		if !canMoveProcurement(p.Status, target) {
			return &StateError{Msg: "Perubahan status dari " + string(p.Status) + " ke " + string(target) + " tidak diizinkan"}
		}

		updates := map[string]any{"status": target}
		if in.SupplierID != nil {
			if err := supplierExists(tx, *in.SupplierID); err != nil {
				return err
			}
			updates["supplier_id"] = *in.SupplierID
		}
		if in.ExpectedDate != nil {
			updates["expected_date"] = *in.ExpectedDate
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}

		items := p.Items
		if in.Items != nil {
			newItems, totalItems, totalAmount, err := buildProcurementItems(tx, *in.Items)
			if err != nil {
				return err
			}
			if err := tx.Where("procurement_id = ?", p.ID).Delete(&models.ProcurementItem{}).Error; err != nil {
				return err
			}
			for i := range newItems {
				newItems[i].ProcurementID = p.ID
			}
			if err := tx.Create(&newItems).Error; err != nil {
				return err
			}
			items = newItems
			updates["total_items"] = totalItems
			updates["total_amount"] = totalAmount
		}

		now := s.now().UTC()
		if target == models.ProcurementOrdered && p.OrderDate == nil {
			updates["order_date"] = now
		}
		if target == models.ProcurementReceived {
			updates["received_date"] = now
		}

		// status lama jadi syarat; kalau sudah berubah oleh request lain, tidak ada baris yang kena
		res := tx.Model(&models.Procurement{}).
			Where("id = ? AND status = ?", p.ID, p.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if target == models.ProcurementReceived && p.Status != models.ProcurementReceived {
			for _, it := range items {
				if err := incrementStock(tx, it.ProductID, it.Quantity, models.StockProcurement, "procurement", p.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProcurementService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Procurement
		if err := tx.Clauses(clauseUpdateLock()).First(&p, id).Error; err != nil {
			return notFound(err)
		}
		if p.Status == models.ProcurementReceived {
			return &StateError{Msg: "Procurement yang sudah diterima tidak dapat dihapus"}
		}
		if err := tx.Where("procurement_id = ?", p.ID).Delete(&models.ProcurementItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Procurement{}, p.ID).Error
	})
}

func supplierExists(tx *gorm.DB, id uint) error {
	var cnt int64
	if err := tx.Model(&models.Supplier{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return invalid("Supplier tidak ditemukan")
	}
	return nil
}

func buildProcurementItems(tx *gorm.DB, in []ProcurementItemInput) ([]models.ProcurementItem, int, int64, error) {
	if len(in) == 0 {
		return nil, 0, 0, invalid("Item procurement wajib diisi")
	}
	items := make([]models.ProcurementItem, 0, len(in))
	var totalItems int
	var totalAmount int64
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, 0, 0, invalid("Jumlah item harus lebih dari 0")
		}
		if it.UnitCost < 0 {
			return nil, 0, 0, invalid("Harga beli tidak boleh negatif")
		}
		var p models.Product
		if err := tx.Select("id").First(&p, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, 0, invalid("Produk dengan id %d tidak ditemukan", it.ProductID)
			}
			return nil, 0, 0, err
		}
		line := it.UnitCost * int64(it.Quantity)
		items = append(items, models.ProcurementItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  line,
		})
		totalItems += it.Quantity
		totalAmount += line
	}
	return items, totalItems, totalAmount, nil
}
