package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/products?search=&category_id=&status=&page=&page_size=&sort=
func (h *Handler) GetProducts(c *gin.Context) {
	rows, pg, err := h.svc.Products.List(c.Request.Context(), service.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: getUintQPtr(c, "category_id"),
		Status:     c.Query("status"),
		Page:       getIntQ(c, "page", 1),
		PageSize:   getIntQ(c, "page_size", 20),
		SortBy:     c.Query("sort"),
	})
	if err != nil {
		h.fail(c, err, "Produk", "Gagal mengambil data produk")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": rows, "pagination": pg})
}

func (h *Handler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.Products.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Produk", "Gagal mengambil data produk")
		return
	}
	utils.Success(c, "Berhasil mengambil data produk", p)
}

// POST /api/products -> 201 + produk
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.svc.Products.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Produk", "Gagal menambahkan produk")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.svc.Products.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Produk", "Gagal memperbarui produk")
		return
	}
	utils.Success(c, "Produk berhasil diperbarui", p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Products.Deactivate(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Produk", "Gagal menonaktifkan produk")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produk berhasil dinonaktifkan"})
}

func (h *Handler) GetProductStockHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rows, pg, err := h.svc.Products.StockHistory(c.Request.Context(), id, getIntQ(c, "page", 1), getIntQ(c, "page_size", 20))
	if err != nil {
		h.fail(c, err, "Produk", "Gagal mengambil riwayat stok")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil mengambil riwayat stok", "data": rows, "pagination": pg})
}

// GET /api/alerts
func (h *Handler) GetInventoryAlerts(c *gin.Context) {
	alerts, err := h.svc.Alerts.Scan(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Alert", "Gagal mengambil alert stok")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    alerts,
		"summary": service.CountByPriority(alerts),
	})
}
