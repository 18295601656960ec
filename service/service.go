package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nzsnyn/pos-sub000/models"

	"github.com/bsm/redislock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound         = errors.New("NOT_FOUND")
	ErrAlreadyProcessed = errors.New("REQUEST_ALREADY_PROCESSED")
)

// ValidationError membawa pesan yang langsung ditampilkan ke client (400).
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StateError: perubahan ditolak karena status dokumen (400).
type StateError struct{ Msg string }

func (e *StateError) Error() string { return e.Msg }

// InsufficientStockError dikembalikan saat update stok bersyarat tidak mengenai baris apa pun.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stok %s tidak cukup (tersedia %d, diminta %d)", e.ProductName, e.Available, e.Requested)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

type Options struct {
	Location *time.Location
	Redis    *redis.Client
	Locker   *redislock.Client
	Logger   *logrus.Logger
	Now      func() time.Time
}

// Services dibangun sekali di main dengan satu *gorm.DB yang sama.
type Services struct {
	Orders       *OrderService
	Aggregator   *Aggregator
	Stats        *StatsService
	Reports      *ReportService
	Alerts       *AlertService
	Procurements *ProcurementService
	Opnames      *StockOpnameService
	Users        *UserService
	Products     *ProductService
	Catalog      *CatalogService
	Shifts       *ShiftService
	Settings     *SettingService

	Location *time.Location
	Now      func() time.Time
}

func New(db *gorm.DB, opt Options) *Services {
	if opt.Location == nil {
		opt.Location = time.UTC
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Logger == nil {
		opt.Logger = logrus.StandardLogger()
	}

	agg := NewAggregator(db)
	return &Services{
		Orders:       NewOrderService(db, opt.Now),
		Aggregator:   agg,
		Stats:        NewStatsService(db, agg, opt),
		Reports:      NewReportService(agg, opt.Location, opt.Now),
		Alerts:       NewAlertService(db),
		Procurements: NewProcurementService(db, opt.Now),
		Opnames:      NewStockOpnameService(db, opt.Now),
		Users:        NewUserService(db),
		Products:     NewProductService(db),
		Catalog:      NewCatalogService(db),
		Shifts:       NewShiftService(db, opt.Now),
		Settings:     NewSettingService(db),
		Location:     opt.Location,
		Now:          opt.Now,
	}
}

// ===== Paging =====

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func newPagination(page, size int, total int64) Pagination {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Pagination{Page: page, PageSize: size, Total: total, TotalPages: pages}
}

func normalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 500 {
		size = 20
	}
	return page, size
}

// applyPagingSort: sortBy "name" = ASC, "-name" = DESC; key di luar allowed pakai defaultOrder.
func applyPagingSort(q *gorm.DB, page, size int, sortBy string, allowed map[string]string, defaultOrder string) *gorm.DB {
	key, dir := sortBy, "ASC"
	if strings.HasPrefix(sortBy, "-") {
		key, dir = sortBy[1:], "DESC"
	}
	if col, ok := allowed[key]; ok {
		q = q.Order(col + " " + dir)
	} else {
		q = q.Order(defaultOrder)
	}
	return q.Offset((page - 1) * size).Limit(size)
}

// recordStock menulis satu baris audit mutasi stok.
func recordStock(tx *gorm.DB, productID uint, oldStock, newStock int, reason models.StockReason, refType string, refID uint) error {
	return tx.Create(&models.StockHistory{
		ProductID: productID,
		OldStock:  oldStock,
		NewStock:  newStock,
		Delta:     newStock - oldStock,
		Reason:    reason,
		RefType:   refType,
		RefID:     refID,
	}).Error
}
