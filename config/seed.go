package config

import (
	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultSettings = []models.Setting{
	{Key: "store_name", Value: "Toko Saya"},
	{Key: "store_address", Value: ""},
	{Key: "store_phone", Value: ""},
	{Key: "receipt_footer", Value: "Terima kasih atas kunjungan Anda"},
}

// SeedDefaults idempotent: hanya membuat data yang belum ada.
func SeedDefaults(db *gorm.DB, cfg Config) error {
	for _, s := range defaultSettings {
		var cnt int64
		if err := db.Model(&models.Setting{}).Where("key = ?", s.Key).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			s := s
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "admin",
		FullName:     "Administrator",
		AvatarURL:    utils.DefaultAvatar("Administrator", "admin"),
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	return db.Create(&admin).Error
}
