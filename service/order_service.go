package service

import (
	"context"
	"errors"
	"time"

	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxRate tetap 10% dari subtotal.
var TaxRate = decimal.New(10, -2)

const maxOrderNumberRetries = 3

type CheckoutItem struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	UnitPrice int64 `json:"unit_price" binding:"gte=0"`
	Subtotal  int64 `json:"subtotal" binding:"gte=0"` // opsional, kalau diisi harus = quantity * unit_price
}

type CheckoutInput struct {
	Items         []CheckoutItem       `json:"items" binding:"required,min=1,dive"`
	CashierID     uint                 `json:"cashier_id" binding:"required"`
	CustomerID    *uint                `json:"customer_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	Discount      int64                `json:"discount" binding:"gte=0"`
	AmountPaid    int64                `json:"amount_paid" binding:"gte=0"`
	Notes         string               `json:"notes" binding:"max=255"`
}

type Totals struct {
	Subtotal int64
	Tax      int64
	Discount int64
	Total    int64
}

// ComputeTotals: subtotal = Σ item subtotal, tax = round(subtotal * 10%), total = subtotal + tax - discount.
func ComputeTotals(itemSubtotals []int64, discount int64) Totals {
	var subtotal int64
	for _, s := range itemSubtotals {
		subtotal += s
	}
	tax := decimal.NewFromInt(subtotal).Mul(TaxRate).Round(0).IntPart()
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}
}

type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderService(db *gorm.DB, now func() time.Time) *OrderService {
	return &OrderService{db: db, now: now}
}

// Checkout membuat order + item dan mengurangi stok dalam satu transaksi.
// Pengurangan stok bersyarat (stock >= qty); kalau gagal seluruh transaksi di-rollback.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, invalid("Keranjang kosong")
	}
	if !in.PaymentMethod.Valid() {
		return nil, invalid("Metode pembayaran tidak valid")
	}
	if in.Discount < 0 {
		return nil, invalid("Diskon tidak boleh negatif")
	}

	subs := make([]int64, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, invalid("Jumlah item harus lebih dari 0")
		}
		line := it.UnitPrice * int64(it.Quantity)
		if it.Subtotal != 0 && it.Subtotal != line {
			return nil, invalid("Subtotal item tidak sesuai dengan harga x jumlah")
		}
		subs = append(subs, line)
	}
	totals := ComputeTotals(subs, in.Discount)
	if totals.Total < 0 {
		return nil, invalid("Diskon melebihi total belanja")
	}

	paid, change := in.AmountPaid, int64(0)
	if in.PaymentMethod == models.PaymentCash {
		if paid < totals.Total {
			return nil, invalid("Jumlah bayar kurang dari total")
		}
		change = paid - totals.Total
	} else {
		paid = totals.Total
	}

	var (
		order models.Order
		err   error
	)
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		order, err = s.checkoutTx(ctx, in, totals, paid, change)
		if err == nil || !isUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) checkoutTx(ctx context.Context, in CheckoutInput, totals Totals, paid, change int64) (models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cashier models.User
		if err := tx.First(&cashier, in.CashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("Kasir tidak ditemukan")
			}
			return err
		}
		if !cashier.IsActive {
			return invalid("Kasir tidak aktif")
		}

		if in.CustomerID != nil {
			var cnt int64
			if err := tx.Model(&models.Customer{}).Where("id = ?", *in.CustomerID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return invalid("Customer tidak ditemukan")
			}
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalid("Produk dengan id %d tidak ditemukan", it.ProductID)
				}
				return err
			}
			if !p.IsActive {
				return invalid("Produk %s tidak aktif", p.Name)
			}
			items = append(items, models.OrderItem{
				ProductID:      p.ID,
				ProductName:    p.Name,
				Quantity:       it.Quantity,
				UnitPrice:      it.UnitPrice,
				WholesalePrice: p.WholesalePrice,
				Subtotal:       it.UnitPrice * int64(it.Quantity),
			})
		}

		var count int64
		if err := tx.Model(&models.Order{}).Count(&count).Error; err != nil {
			return err
		}

		// order di shift kasir yang masih terbuka
		var shiftID *uint
		var shift models.Shift
		res := tx.Where("cashier_id = ? AND status = ?", in.CashierID, models.ShiftOpen).Limit(1).Find(&shift)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			shiftID = &shift.ID
		}

		order = models.Order{
			OrderNumber:   utils.GenOrderNumber(count+1, s.now()),
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Discount:      totals.Discount,
			Total:         totals.Total,
			AmountPaid:    paid,
			Change:        change,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: models.PaymentPaid,
			Status:        models.OrderCompleted,
			CustomerID:    in.CustomerID,
			CashierID:     in.CashierID,
			ShiftID:       shiftID,
			Notes:         in.Notes,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range order.Items {
			if err := decrementStock(tx, it.ProductID, it.Quantity, it.ProductName, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	return order, err
}

func decrementStock(tx *gorm.DB, productID uint, qty int, name string, orderID uint) error {
	dec := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if dec.Error != nil {
		return dec.Error
	}

	var newStock int
	if err := tx.Model(&models.Product{}).Select("stock").Where("id = ?", productID).Scan(&newStock).Error; err != nil {
		return err
	}
	if dec.RowsAffected == 0 {
		return &InsufficientStockError{ProductID: productID, ProductName: name, Requested: qty, Available: newStock}
	}
	return recordStock(tx, productID, newStock+qty, newStock, models.StockSale, "order", orderID)
}

// Cancel membatalkan order COMPLETED dan mengembalikan stok.
func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Clauses(clauseUpdateLock()).Preload("Items").First(&o, id).Error; err != nil {
			return notFound(err)
		}
		if o.Status != models.OrderCompleted {
			return &StateError{Msg: "Hanya order COMPLETED yang bisa dibatalkan"}
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, models.OrderCompleted).
			Updates(map[string]any{
				"status":         models.OrderCancelled,
				"payment_status": models.PaymentRefunded,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		for _, it := range o.Items {
			if err := incrementStock(tx, it.ProductID, it.Quantity, models.StockSaleCancel, "order", o.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func incrementStock(tx *gorm.DB, productID uint, qty int, reason models.StockReason, refType string, refID uint) error {
	inc := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if inc.Error != nil {
		return inc.Error
	}
	if inc.RowsAffected == 0 {
		return invalid("Produk dengan id %d tidak ditemukan", productID)
	}
	var newStock int
	if err := tx.Model(&models.Product{}).Select("stock").Where("id = ?", productID).Scan(&newStock).Error; err != nil {
		return err
	}
	return recordStock(tx, productID, newStock-qty, newStock, reason, refType, refID)
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").Preload("Customer").Preload("Cashier").
		First(&o, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

type OrderFilter struct {
	From          *time.Time // inklusif
	To            *time.Time // eksklusif
	Status        string
	PaymentMethod string
	CashierID     *uint
	Page          int
	PageSize      int
	SortBy        string
}

func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]models.Order, Pagination, error) {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)

	q := s.db.WithContext(ctx).Model(&models.Order{})
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.UTC())
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.CashierID != nil {
		q = q.Where("cashier_id = ?", *f.CashierID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	allowed := map[string]string{
		"created_at": "created_at",
		"total":      "total",
		"number":     "order_number",
	}
	var rows []models.Order
	if err := applyPagingSort(q, f.Page, f.PageSize, f.SortBy, allowed, "created_at DESC, id DESC").
		Preload("Items").Find(&rows).Error; err != nil {
		return nil, Pagination{}, err
	}
	return rows, newPagination(f.Page, f.PageSize, total), nil
}
