package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:180;not null" json:"name"`
	Phone     string    `gorm:"size:60;index" json:"phone"`
	Email     string    `gorm:"size:120" json:"email"`
	Address   string    `gorm:"size:255" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
