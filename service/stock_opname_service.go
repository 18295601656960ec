package service

import (
	"context"
	"time"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/utils"

	"gorm.io/gorm"
)

type CreateOpnameInput struct {
	Notes       string `json:"notes" binding:"max=255"`
	ProductIDs  []uint `json:"product_ids"` // kosong = semua produk aktif
	CreatedByID *uint  `json:"created_by_id"`
}

type OpnameItemInput struct {
	ID            uint    `json:"id" binding:"required"`
	PhysicalStock *int    `json:"physical_stock" binding:"omitempty,gte=0"`
	Notes         *string `json:"notes" binding:"omitempty,max=255"`
}

type UpdateOpnameInput struct {
	Status *models.OpnameStatus `json:"status"`
	Notes  *string              `json:"notes" binding:"omitempty,max=255"`
	Items  []OpnameItemInput    `json:"items" binding:"omitempty,dive"`
}

var opnameTransitions = map[models.OpnameStatus][]models.OpnameStatus{
	models.OpnameDraft:      {models.OpnameDraft, models.OpnameInProgress, models.OpnameCancelled},
	models.OpnameInProgress: {models.OpnameInProgress, models.OpnameCompleted, models.OpnameCancelled},
}

func canMoveOpname(from, to models.OpnameStatus) bool {
	for _, s := range opnameTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type StockOpnameService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStockOpnameService(db *gorm.DB, now func() time.Time) *StockOpnameService {
	return &StockOpnameService{db: db, now: now}
}

func (s *StockOpnameService) List(ctx context.Context, status string, page, size int) ([]models.StockOpname, Pagination, error) {
	page, size = normalizePage(page, size)
	q := s.db.WithContext(ctx).Model(&models.StockOpname{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	var rows []models.StockOpname
	if err := q.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}
	return rows, newPagination(page, size, total), nil
}

func (s *StockOpnameService) Get(ctx context.Context, id uint) (*models.StockOpname, error) {
	var o models.StockOpname
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&o, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// Create memotret stok sistem produk saat ini sebagai SystemStock.
func (s *StockOpnameService) Create(ctx context.Context, in CreateOpnameInput) (*models.StockOpname, error) {
	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		q := tx.Order("id ASC")
		if len(in.ProductIDs) > 0 {
			q = q.Where("id IN ?", in.ProductIDs)
		} else {
			q = q.Where("is_active = ?", true)
		}
		if err := q.Find(&products).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return invalid("Tidak ada produk untuk diopname")
		}
		if len(in.ProductIDs) > 0 && len(products) != len(uniqueIDs(in.ProductIDs)) {
			return invalid("Sebagian produk tidak ditemukan")
		}

		items := make([]models.StockOpnameItem, 0, len(products))
		for _, p := range products {
			items = append(items, models.StockOpnameItem{ProductID: p.ID, SystemStock: p.Stock})
		}

		var count int64
		if err := tx.Model(&models.StockOpname{}).Count(&count).Error; err != nil {
			return err
		}
		o := models.StockOpname{
			Number:      utils.GenDocCode("SO", count+1, s.now()),
			Status:      models.OpnameDraft,
			Notes:       in.Notes,
			TotalItems:  len(items),
			CreatedByID: in.CreatedByID,
			Items:       items,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		id = o.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update mencatat hasil hitung fisik. Kalau semua item sudah dicek, opname otomatis COMPLETED
// dan stok produk diset ke hasil hitung fisik.
func (s *StockOpnameService) Update(ctx context.Context, id uint, in UpdateOpnameInput) (*models.StockOpname, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.StockOpname
		if err := tx.Clauses(clauseUpdateLock()).Preload("Items").First(&o, id).Error; err != nil {
			return notFound(err)
		}
		switch o.Status {
		case models.OpnameCompleted:
			return &StateError{Msg: "Stock opname yang sudah selesai tidak dapat diubah"}
		case models.OpnameCancelled:
			return &StateError{Msg: "Stock opname yang sudah dibatalkan tidak dapat diubah"}
		}

		byID := make(map[uint]*models.StockOpnameItem, len(o.Items))
		for i := range o.Items {
			byID[o.Items[i].ID] = &o.Items[i]
		}
		for _, u := range in.Items {
			it, ok := byID[u.ID]
			if !ok {
				return invalid("Item opname dengan id %d tidak ditemukan", u.ID)
			}
			if u.PhysicalStock != nil {
				if *u.PhysicalStock < 0 {
					return invalid("Stok fisik tidak boleh negatif")
				}
				v := *u.PhysicalStock
				it.PhysicalStock = &v
				it.IsChecked = true
				it.Difference = v - it.SystemStock
			}
			if u.Notes != nil {
				it.Notes = *u.Notes
			}
			if err := tx.Model(&models.StockOpnameItem{}).Where("id = ?", it.ID).Updates(map[string]any{
				"physical_stock": it.PhysicalStock,
				"is_checked":     it.IsChecked,
				"difference":     it.Difference,
				"notes":          it.Notes,
			}).Error; err != nil {
				return err
			}
		}

		checked, diff := opnameProgress(o.Items)
		target := o.Status
		if in.Status != nil {
			target = *in.Status
		} else if len(in.Items) > 0 && o.Status == models.OpnameDraft {
			target = models.OpnameInProgress
		}

		if target != models.OpnameCancelled && o.TotalItems > 0 && checked == o.TotalItems {
			target = models.OpnameCompleted
		}
		if target == models.OpnameCompleted && checked != o.TotalItems {
			return invalid("Semua item harus dicek sebelum opname diselesaikan")
		}

		// DRAFT -> COMPLETED lewat auto-complete dianggap melewati IN_PROGRESS
		from := o.Status
		if from == models.OpnameDraft && target == models.OpnameCompleted {
			from = models.OpnameInProgress
		}
		if !canMoveOpname(from, target) {
			return &StateError{Msg: "Perubahan status dari " + string(o.Status) + " ke " + string(target) + " tidak diizinkan"}
		}

		now := s.now().UTC()
		updates := map[string]any{
			"status":           target,
			"checked_items":    checked,
			"total_difference": diff,
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if o.StartedDate == nil && target != models.OpnameDraft {
			updates["started_date"] = now
		}
		if target == models.OpnameCompleted {
			updates["completed_date"] = now
		}

		res := tx.Model(&models.StockOpname{}).
			Where("id = ? AND status = ?", o.ID, o.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if target == models.OpnameCompleted {
			for _, it := range o.Items {
				if err := setStock(tx, it.ProductID, *it.PhysicalStock, o.ID); err != nil {
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

func (s *StockOpnameService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.StockOpname
		if err := tx.Clauses(clauseUpdateLock()).First(&o, id).Error; err != nil {
			return notFound(err)
		}
		if o.Status == models.OpnameCompleted {
			return &StateError{Msg: "Stock opname yang sudah selesai tidak dapat dihapus"}
		}
		if err := tx.Where("stock_opname_id = ?", o.ID).Delete(&models.StockOpnameItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockOpname{}, o.ID).Error
	})
}

func opnameProgress(items []models.StockOpnameItem) (checked int, diff int) {
	for _, it := range items {
		if it.IsChecked {
			checked++
			diff += it.Difference
		}
	}
	return checked, diff
}

func setStock(tx *gorm.DB, productID uint, physical int, opnameID uint) error {
	var p models.Product
	if err := tx.Clauses(clauseUpdateLock()).Select("id", "stock").First(&p, productID).Error; err != nil {
		return notFound(err)
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).UpdateColumn("stock", physical).Error; err != nil {
		return err
	}
	return recordStock(tx, productID, p.Stock, physical, models.StockOpnameAdj, "stock_opname", opnameID)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
