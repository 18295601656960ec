package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetStockOpnames(c *gin.Context) {
	rows, pg, err := h.svc.Opnames.List(c.Request.Context(), c.Query("status"), getIntQ(c, "page", 1), getIntQ(c, "page_size", 20))
	if err != nil {
		h.fail(c, err, "Stock opname", "Gagal mengambil data stock opname")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil mengambil data stock opname", "data": rows, "pagination": pg})
}

func (h *Handler) GetStockOpnameByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := h.svc.Opnames.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Stock opname", "Gagal mengambil data stock opname")
		return
	}
	utils.Success(c, "Berhasil mengambil data stock opname", o)
}

func (h *Handler) CreateStockOpname(c *gin.Context) {
	var input service.CreateOpnameInput
	if !bindJSON(c, &input) {
		return
	}
	o, err := h.svc.Opnames.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Stock opname", "Gagal membuat stock opname")
		return
	}
	utils.Created(c, "Stock opname berhasil dibuat", o)
}

func (h *Handler) UpdateStockOpname(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateOpnameInput
	if !bindJSON(c, &input) {
		return
	}
	o, err := h.svc.Opnames.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Stock opname", "Gagal memperbarui stock opname")
		return
	}
	utils.Success(c, "Stock opname berhasil diperbarui", o)
}

func (h *Handler) DeleteStockOpname(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Opnames.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Stock opname", "Gagal menghapus stock opname")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock opname berhasil dihapus"})
}
