package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nzsnyn/pos-sub000/models"

	"gorm.io/gorm"
)

type ProductInput struct {
	Name           string  `json:"name" binding:"required,max=180"`
	SKU            *string `json:"sku" binding:"omitempty,max=60"`
	Barcode        *string `json:"barcode" binding:"omitempty,max=60"`
	Description    string  `json:"description" binding:"max=500"`
	Price          int64   `json:"price" binding:"gt=0"`
	WholesalePrice *int64  `json:"wholesale_price" binding:"omitempty,gte=0"`
	Stock          int     `json:"stock" binding:"gte=0"`
	MinStock       int     `json:"min_stock" binding:"gte=0"`
	CategoryID     uint    `json:"category_id" binding:"required"`
	UnitID         *uint   `json:"unit_id"`
	IsActive       *bool   `json:"is_active"`
}

// ProductView = produk + status stok hasil hitung.
type ProductView struct {
	models.Product
	Status string `json:"status"`
}

func viewOf(p models.Product) ProductView {
	return ProductView{Product: p, Status: p.StockStatus()}
}

type ProductFilter struct {
	Search     string
	CategoryID *uint
	Status     string
	Page       int
	PageSize   int
	SortBy     string
}

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]ProductView, Pagination, error) {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)

	q := s.db.WithContext(ctx).Model(&models.Product{})
	if v := strings.ToLower(strings.TrimSpace(f.Search)); v != "" {
		like := "%" + v + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR barcode LIKE ?", like, like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	switch f.Status {
	case "":
	case models.ProductInactive:
		q = q.Where("is_active = ?", false)
	case models.ProductOutOfStock:
		q = q.Where("is_active = ? AND stock <= 0", true)
	case models.ProductLowStock:
		q = q.Where("is_active = ? AND stock > 0 AND stock <= min_stock", true)
	case models.ProductInStock:
		q = q.Where("is_active = ? AND stock > 0 AND stock > min_stock", true)
	default:
		return nil, Pagination{}, invalid("Status produk tidak valid")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	allowed := map[string]string{
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
	}
	var rows []models.Product
	if err := applyPagingSort(q, f.Page, f.PageSize, f.SortBy, allowed, "name ASC, id ASC").
		Preload("Category").Preload("Unit").
		Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}

	out := make([]ProductView, 0, len(rows))
	for _, p := range rows {
		out = append(out, viewOf(p))
	}
	return out, newPagination(f.Page, f.PageSize, total), nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*ProductView, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Preload("Category").Preload("Unit").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	v := viewOf(p)
	return &v, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*ProductView, error) {
	in.SKU, in.Barcode = normalizeOptional(in.SKU), normalizeOptional(in.Barcode)
	if err := s.validate(ctx, 0, in); err != nil {
		return nil, err
	}

	p := models.Product{
		Name:           strings.TrimSpace(in.Name),
		SKU:            in.SKU,
		Barcode:        in.Barcode,
		Description:    in.Description,
		Price:          in.Price,
		WholesalePrice: in.WholesalePrice,
		Stock:          in.Stock,
		MinStock:       in.MinStock,
		IsActive:       true,
		CategoryID:     in.CategoryID,
		UnitID:         in.UnitID,
	}
	db := s.db.WithContext(ctx)
	if err := db.Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("SKU atau barcode sudah digunakan")
		}
		return nil, err
	}
	// default:true di kolom membuat false tidak ikut ter-insert
	if in.IsActive != nil && !*in.IsActive {
		if err := db.Model(&p).Update("is_active", false).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, p.ID)
}

// Update tidak mengubah stok; stok hanya berubah lewat checkout, procurement dan stock opname.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*ProductView, error) {
	var cur models.Product
	if err := s.db.WithContext(ctx).First(&cur, id).Error; err != nil {
		return nil, notFound(err)
	}
	in.SKU, in.Barcode = normalizeOptional(in.SKU), normalizeOptional(in.Barcode)
	if err := s.validate(ctx, cur.ID, in); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":            strings.TrimSpace(in.Name),
		"sku":             in.SKU,
		"barcode":         in.Barcode,
		"description":     in.Description,
		"price":           in.Price,
		"wholesale_price": in.WholesalePrice,
		"min_stock":       in.MinStock,
		"category_id":     in.CategoryID,
		"unit_id":         in.UnitID,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", cur.ID).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("SKU atau barcode sudah digunakan")
		}
		return nil, err
	}
	return s.Get(ctx, cur.ID)
}

// Deactivate: produk tidak dihapus karena masih direferensikan order lama.
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) StockHistory(ctx context.Context, productID uint, page, size int) ([]models.StockHistory, Pagination, error) {
	page, size = normalizePage(page, size)
	db := s.db.WithContext(ctx)

	var cnt int64
	if err := db.Model(&models.Product{}).Where("id = ?", productID).Count(&cnt).Error; err != nil {
		return nil, Pagination{}, err
	}
	if cnt == 0 {
		return nil, Pagination{}, ErrNotFound
	}

	q := db.Model(&models.StockHistory{}).Where("product_id = ?", productID)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	var rows []models.StockHistory
	if err := q.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}
	return rows, newPagination(page, size, total), nil
}

func (s *ProductService) validate(ctx context.Context, selfID uint, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Nama produk wajib diisi")
	}
	if in.Price <= 0 {
		return invalid("Harga harus lebih dari 0")
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return invalid("Stok tidak boleh negatif")
	}
	if in.WholesalePrice != nil && *in.WholesalePrice < 0 {
		return invalid("Harga grosir tidak boleh negatif")
	}

	db := s.db.WithContext(ctx)
	var cat models.Category
	if err := db.Select("id").First(&cat, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("Kategori tidak ditemukan")
		}
		return err
	}
	if in.UnitID != nil {
		var cnt int64
		if err := db.Model(&models.Unit{}).Where("id = ?", *in.UnitID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return invalid("Satuan tidak ditemukan")
		}
	}

	if in.SKU != nil {
		var cnt int64
		if err := db.Model(&models.Product{}).Where("sku = ? AND id <> ?", *in.SKU, selfID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return invalid("SKU sudah digunakan")
		}
	}
	if in.Barcode != nil {
		var cnt int64
		if err := db.Model(&models.Product{}).Where("barcode = ? AND id <> ?", *in.Barcode, selfID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return invalid("Barcode sudah digunakan")
		}
	}
	return nil
}
