package service

import (
	"context"

	"github.com/nzsnyn/pos-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var settingKeys = map[string]struct{}{
	"store_name":     {},
	"store_address":  {},
	"store_phone":    {},
	"receipt_footer": {},
}

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

func (s *SettingService) All(ctx context.Context) (map[string]string, error) {
	var rows []models.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// Update hanya menerima key yang dikenal.
func (s *SettingService) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, invalid("Tidak ada pengaturan yang diubah")
	}
	rows := make([]models.Setting, 0, len(values))
	for k, v := range values {
		if _, ok := settingKeys[k]; !ok {
			return nil, invalid("Pengaturan %s tidak dikenal", k)
		}
		rows = append(rows, models.Setting{Key: k, Value: v})
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		return nil, err
	}
	return s.All(ctx)
}
