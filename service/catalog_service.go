package service

import (
	"context"
	"strings"

	"github.com/nzsnyn/pos-sub000/models"

	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=255"`
}

type UnitInput struct {
	Name   string `json:"name" binding:"required,max=60"`
	Symbol string `json:"symbol" binding:"max=20"`
}

type SupplierInput struct {
	Name          string `json:"name" binding:"required,max=180"`
	ContactPerson string `json:"contact_person" binding:"max=120"`
	Phone         string `json:"phone" binding:"max=60"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address" binding:"max=255"`
}

type CustomerInput struct {
	Name    string `json:"name" binding:"required,max=180"`
	Phone   string `json:"phone" binding:"max=60"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"max=255"`
}

type CategoryRow struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// CatalogService: master data sederhana (kategori, satuan, supplier, customer).
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ===== Kategori =====

func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count").
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueName(ctx, &models.Category{}, 0, name, "Nama kategori sudah digunakan"); err != nil {
		return nil, err
	}
	c := models.Category{Name: name, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, s.mapUnique(err, "Nama kategori sudah digunakan")
	}
	return &c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueName(ctx, &models.Category{}, c.ID, name, "Nama kategori sudah digunakan"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(c).Updates(map[string]any{"name": name, "description": in.Description}).Error; err != nil {
		return nil, s.mapUnique(err, "Nama kategori sudah digunakan")
	}
	return s.GetCategory(ctx, id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", c.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return invalid("Kategori masih dipakai oleh %d produk", cnt)
	}
	return s.db.WithContext(ctx).Delete(&models.Category{}, c.ID).Error
}

// ===== Satuan =====

func (s *CatalogService) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var rows []models.Unit
	err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (s *CatalogService) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	var u models.Unit
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *CatalogService) CreateUnit(ctx context.Context, in UnitInput) (*models.Unit, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueName(ctx, &models.Unit{}, 0, name, "Nama satuan sudah digunakan"); err != nil {
		return nil, err
	}
	u := models.Unit{Name: name, Symbol: in.Symbol}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, s.mapUnique(err, "Nama satuan sudah digunakan")
	}
	return &u, nil
}

func (s *CatalogService) UpdateUnit(ctx context.Context, id uint, in UnitInput) (*models.Unit, error) {
	u, err := s.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.uniqueName(ctx, &models.Unit{}, u.ID, name, "Nama satuan sudah digunakan"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(u).Updates(map[string]any{"name": name, "symbol": in.Symbol}).Error; err != nil {
		return nil, s.mapUnique(err, "Nama satuan sudah digunakan")
	}
	return s.GetUnit(ctx, id)
}

func (s *CatalogService) DeleteUnit(ctx context.Context, id uint) error {
	u, err := s.GetUnit(ctx, id)
	if err != nil {
		return err
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("unit_id = ?", u.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return invalid("Satuan masih dipakai oleh %d produk", cnt)
	}
	return s.db.WithContext(ctx).Delete(&models.Unit{}, u.ID).Error
}

// ===== Supplier =====

func (s *CatalogService) ListSuppliers(ctx context.Context, search string) ([]models.Supplier, error) {
	var rows []models.Supplier
	q := s.db.WithContext(ctx).Order("name ASC")
	if v := strings.ToLower(strings.TrimSpace(search)); v != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+v+"%")
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (s *CatalogService) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var sp models.Supplier
	if err := s.db.WithContext(ctx).First(&sp, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sp, nil
}

func (s *CatalogService) CreateSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	sp := models.Supplier{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *CatalogService) UpdateSupplier(ctx context.Context, id uint, in SupplierInput) (*models.Supplier, error) {
	sp, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(sp).Updates(map[string]any{
		"name":           strings.TrimSpace(in.Name),
		"contact_person": in.ContactPerson,
		"phone":          in.Phone,
		"email":          in.Email,
		"address":        in.Address,
	}).Error; err != nil {
		return nil, err
	}
	return s.GetSupplier(ctx, id)
}

func (s *CatalogService) DeleteSupplier(ctx context.Context, id uint) error {
	sp, err := s.GetSupplier(ctx, id)
	if err != nil {
		return err
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Procurement{}).Where("supplier_id = ?", sp.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return invalid("Supplier masih memiliki %d procurement", cnt)
	}
	return s.db.WithContext(ctx).Delete(&models.Supplier{}, sp.ID).Error
}

// ===== Customer =====

func (s *CatalogService) ListCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	var rows []models.Customer
	q := s.db.WithContext(ctx).Order("name ASC")
	if v := strings.ToLower(strings.TrimSpace(search)); v != "" {
		like := "%" + v + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (s *CatalogService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *CatalogService) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	c := models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(c).Updates(map[string]any{
		"name":    strings.TrimSpace(in.Name),
		"phone":   in.Phone,
		"email":   in.Email,
		"address": in.Address,
	}).Error; err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, id)
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id uint) error {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", c.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return invalid("Customer masih memiliki %d order", cnt)
	}
	return s.db.WithContext(ctx).Delete(&models.Customer{}, c.ID).Error
}

func (s *CatalogService) uniqueName(ctx context.Context, model any, selfID uint, name, msg string) error {
	if name == "" {
		return invalid("Nama wajib diisi")
	}
	var cnt int64
	if err := s.db.WithContext(ctx).Model(model).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), selfID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return invalid(msg)
	}
	return nil
}

func (s *CatalogService) mapUnique(err error, msg string) error {
	if isUniqueViolation(err) {
		return invalid(msg)
	}
	return err
}
