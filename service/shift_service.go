package service

import (
	"context"
	"errors"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"gorm.io/gorm"
)

type OpenShiftInput struct {
	CashierID   uint   `json:"cashier_id" binding:"required"`
	OpeningCash int64  `json:"opening_cash" binding:"gte=0"`
	Notes       string `json:"notes" binding:"max=255"`
}

type CloseShiftInput struct {
	ClosingCash int64   `json:"closing_cash" binding:"gte=0"`
	Notes       *string `json:"notes" binding:"omitempty,max=255"`
}

type ShiftService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewShiftService(db *gorm.DB, now func() time.Time) *ShiftService {
	return &ShiftService{db: db, now: now}
}

// Open: satu kasir hanya boleh punya satu shift OPEN.
func (s *ShiftService) Open(ctx context.Context, in OpenShiftInput) (*models.Shift, error) {
	var shift models.Shift
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cashier models.User
		if err := tx.Clauses(clauseUpdateLock()).First(&cashier, in.CashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("Kasir tidak ditemukan")
			}
			return err
		}
		if !cashier.IsActive {
			return invalid("Kasir tidak aktif")
		}

		var cnt int64
		if err := tx.Model(&models.Shift{}).
			Where("cashier_id = ? AND status = ?", in.CashierID, models.ShiftOpen).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return &StateError{Msg: "Kasir masih memiliki shift yang terbuka"}
		}

		shift = models.Shift{
			CashierID:   in.CashierID,
			Status:      models.ShiftOpen,
			OpeningCash: in.OpeningCash,
			Notes:       in.Notes,
			OpenedAt:    s.now().UTC(),
		}
		return tx.Create(&shift).Error
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// Close menghitung kas seharusnya = modal awal + penjualan tunai selama shift.
func (s *ShiftService) Close(ctx context.Context, id uint, in CloseShiftInput) (*models.Shift, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift models.Shift
		if err := tx.Clauses(clauseUpdateLock()).First(&shift, id).Error; err != nil {
			return notFound(err)
		}
		if shift.Status != models.ShiftOpen {
			return &StateError{Msg: "Shift sudah ditutup"}
		}

		type row struct {
			PaymentMethod models.PaymentMethod
			Total         int64
			Count         int64
		}
		var rows []row
		if err := tx.Model(&models.Order{}).
			Select("payment_method, COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
			Where("shift_id = ? AND status = ?", shift.ID, models.OrderCompleted).
			Group("payment_method").
			Scan(&rows).Error; err != nil {
			return err
		}

		var sales, cash, count int64
		for _, r := range rows {
			sales += r.Total
			count += r.Count
			if r.PaymentMethod == models.PaymentCash {
				cash += r.Total
			}
		}
		expected := shift.OpeningCash + cash
		diff := in.ClosingCash - expected

		updates := map[string]any{
			"status":             models.ShiftClosed,
			"closing_cash":       in.ClosingCash,
			"expected_cash":      expected,
			"cash_difference":    diff,
			"total_sales":        sales,
			"total_transactions": count,
			"closed_at":          s.now().UTC(),
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		res := tx.Model(&models.Shift{}).Where("id = ? AND status = ?", shift.ID, models.ShiftOpen).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ShiftService) Get(ctx context.Context, id uint) (*models.Shift, error) {
	var shift models.Shift
	if err := s.db.WithContext(ctx).Preload("Cashier").First(&shift, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shift, nil
}

// Active mengembalikan ErrNotFound kalau kasir tidak punya shift terbuka.
func (s *ShiftService) Active(ctx context.Context, cashierID uint) (*models.Shift, error) {
	var shift models.Shift
	if err := s.db.WithContext(ctx).
		Preload("Cashier").
		Where("cashier_id = ? AND status = ?", cashierID, models.ShiftOpen).
		First(&shift).Error; err != nil {
		return nil, notFound(err)
	}
	return &shift, nil
}
