package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProcurements(c *gin.Context) {
	rows, pg, err := h.svc.Procurements.List(c.Request.Context(), service.ProcurementFilter{
		Status:     c.Query("status"),
		SupplierID: getUintQPtr(c, "supplier_id"),
		Page:       getIntQ(c, "page", 1),
		PageSize:   getIntQ(c, "page_size", 20),
	})
	if err != nil {
		h.fail(c, err, "Procurement", "Gagal mengambil data procurement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil mengambil data procurement", "data": rows, "pagination": pg})
}

func (h *Handler) GetProcurementByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.Procurements.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Procurement", "Gagal mengambil data procurement")
		return
	}
	utils.Success(c, "Berhasil mengambil data procurement", p)
}

func (h *Handler) CreateProcurement(c *gin.Context) {
	var input service.CreateProcurementInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.svc.Procurements.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Procurement", "Gagal membuat procurement")
		return
	}
	utils.Created(c, "Procurement berhasil dibuat", p)
}

// PUT /api/procurement/:id
func (h *Handler) UpdateProcurement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateProcurementInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.svc.Procurements.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Procurement", "Gagal memperbarui procurement")
		return
	}
	utils.Success(c, "Procurement berhasil diperbarui", p)
}

func (h *Handler) DeleteProcurement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Procurements.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Procurement", "Gagal menghapus procurement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Procurement berhasil dihapus"})
}
