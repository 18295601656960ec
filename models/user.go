package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleCashier UserRole = "CASHIER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey"              json:"id"`
	Username     string    `gorm:"uniqueIndex;size:120"    json:"username"`
	Email        *string   `gorm:"uniqueIndex;size:180"    json:"email"`
	FullName     string    `gorm:"size:180"                json:"full_name"`
	Phone        string    `gorm:"size:60"                 json:"phone"`
	AvatarURL    string    `gorm:"size:255"                json:"avatar_url"`
	Role         UserRole  `gorm:"size:20;index;not null"  json:"role"`
	PasswordHash string    `gorm:"size:255"                json:"-"` // jangan dikirim ke client
	IsActive     bool      `gorm:"default:true"            json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
