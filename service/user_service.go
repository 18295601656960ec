package service

import (
	"context"
	"strings"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username string          `json:"username" binding:"required,min=3,max=120"`
	Email    *string         `json:"email" binding:"omitempty,email"`
	FullName string          `json:"full_name" binding:"required,max=180"`
	Phone    string          `json:"phone" binding:"max=60"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type UpdateUserInput struct {
	Username *string          `json:"username" binding:"omitempty,min=3,max=120"`
	Email    *string          `json:"email" binding:"omitempty,email"`
	FullName *string          `json:"full_name" binding:"omitempty,max=180"`
	Phone    *string          `json:"phone" binding:"omitempty,max=60"`
	Password *string          `json:"password" binding:"omitempty,min=6"`
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserFilter struct {
	Search   string
	Role     string
	Active   *bool
	Page     int
	PageSize int
}

func (s *UserService) List(ctx context.Context, f UserFilter) ([]models.User, Pagination, error) {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)
	q := s.db.WithContext(ctx).Model(&models.User{})
	if v := strings.ToLower(strings.TrimSpace(f.Search)); v != "" {
		like := "%" + v + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	var rows []models.User
	if err := q.Order("id ASC").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}
	return rows, newPagination(f.Page, f.PageSize, total), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeOptional(in.Email)
	if !in.Role.Valid() {
		return nil, invalid("Role tidak valid")
	}
	if err := s.checkUnique(ctx, 0, &username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        in.Phone,
		AvatarURL:    utils.DefaultAvatar(in.FullName, username),
		Role:         in.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("Username atau email sudah digunakan")
		}
		return nil, err
	}
	return &u, nil
}

// Update: password hanya di-hash ulang kalau dikirim.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	var username *string
	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if len(v) < 3 {
			return nil, invalid("Username minimal 3 karakter")
		}
		username = &v
		updates["username"] = v
	}
	var email *string
	if in.Email != nil {
		email = normalizeOptional(in.Email)
		updates["email"] = email
	}
	if err := s.checkUnique(ctx, u.ID, username, email); err != nil {
		return nil, err
	}
	if in.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, invalid("Role tidak valid")
		}
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 6 {
			return nil, invalid("Password minimal 6 karakter")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, invalid("Tidak ada data yang diubah")
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("Username atau email sudah digunakan")
		}
		return nil, err
	}
	return s.Get(ctx, u.ID)
}

// Deactivate = soft delete; data user tetap ada untuk riwayat order.
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) checkUnique(ctx context.Context, selfID uint, username, email *string) error {
	db := s.db.WithContext(ctx)
	if username != nil {
		var cnt int64
		if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", *username, selfID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return invalid("Username sudah digunakan")
		}
	}
	if email != nil {
		var cnt int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *email, selfID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return invalid("Email sudah digunakan")
		}
	}
	return nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
