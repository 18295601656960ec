package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

// ================= Kategori =================

func (h *Handler) GetCategories(c *gin.Context) {
	rows, err := h.svc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Kategori", "Gagal mengambil data kategori")
		return
	}
	utils.Success(c, "Berhasil mengambil data kategori", rows)
}

func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.svc.Catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Kategori", "Gagal mengambil data kategori")
		return
	}
	utils.Success(c, "Berhasil mengambil data kategori", row)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Kategori", "Gagal menambahkan kategori")
		return
	}
	utils.Created(c, "Kategori berhasil ditambahkan", row)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Kategori", "Gagal memperbarui kategori")
		return
	}
	utils.Success(c, "Kategori berhasil diperbarui", row)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Kategori", "Gagal menghapus kategori")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategori berhasil dihapus"})
}

// ================= Satuan =================

func (h *Handler) GetUnits(c *gin.Context) {
	rows, err := h.svc.Catalog.ListUnits(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Satuan", "Gagal mengambil data satuan")
		return
	}
	utils.Success(c, "Berhasil mengambil data satuan", rows)
}

func (h *Handler) GetUnitByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.svc.Catalog.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Satuan", "Gagal mengambil data satuan")
		return
	}
	utils.Success(c, "Berhasil mengambil data satuan", row)
}

func (h *Handler) CreateUnit(c *gin.Context) {
	var input service.UnitInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.CreateUnit(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Satuan", "Gagal menambahkan satuan")
		return
	}
	utils.Created(c, "Satuan berhasil ditambahkan", row)
}

func (h *Handler) UpdateUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UnitInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.UpdateUnit(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Satuan", "Gagal memperbarui satuan")
		return
	}
	utils.Success(c, "Satuan berhasil diperbarui", row)
}

func (h *Handler) DeleteUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteUnit(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Satuan", "Gagal menghapus satuan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Satuan berhasil dihapus"})
}

// ================= Supplier =================

func (h *Handler) GetSuppliers(c *gin.Context) {
	rows, err := h.svc.Catalog.ListSuppliers(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err, "Supplier", "Gagal mengambil data supplier")
		return
	}
	utils.Success(c, "Berhasil mengambil data supplier", rows)
}

func (h *Handler) GetSupplierByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.svc.Catalog.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Supplier", "Gagal mengambil data supplier")
		return
	}
	utils.Success(c, "Berhasil mengambil data supplier", row)
}

func (h *Handler) CreateSupplier(c *gin.Context) {
	var input service.SupplierInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.CreateSupplier(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Supplier", "Gagal menambahkan supplier")
		return
	}
	utils.Created(c, "Supplier berhasil ditambahkan", row)
}

func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.SupplierInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.UpdateSupplier(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Supplier", "Gagal memperbarui supplier")
		return
	}
	utils.Success(c, "Supplier berhasil diperbarui", row)
}

func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteSupplier(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Supplier", "Gagal menghapus supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier berhasil dihapus"})
}

// ================= Customer =================

func (h *Handler) GetCustomers(c *gin.Context) {
	rows, err := h.svc.Catalog.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err, "Customer", "Gagal mengambil data customer")
		return
	}
	utils.Success(c, "Berhasil mengambil data customer", rows)
}

func (h *Handler) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.svc.Catalog.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Customer", "Gagal mengambil data customer")
		return
	}
	utils.Success(c, "Berhasil mengambil data customer", row)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var input service.CustomerInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Customer", "Gagal menambahkan customer")
		return
	}
	utils.Created(c, "Customer berhasil ditambahkan", row)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.CustomerInput
	if !bindJSON(c, &input) {
		return
	}
	row, err := h.svc.Catalog.UpdateCustomer(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Customer", "Gagal memperbarui customer")
		return
	}
	utils.Success(c, "Customer berhasil diperbarui", row)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Customer", "Gagal menghapus customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer berhasil dihapus"})
}
