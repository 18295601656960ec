package controllers

import (
	"net/http"

	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) OpenShift(c *gin.Context) {
	var input service.OpenShiftInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.svc.Shifts.Open(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Shift", "Gagal membuka shift")
		return
	}
	utils.Created(c, "Shift berhasil dibuka", s)
}

func (h *Handler) CloseShift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.CloseShiftInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.svc.Shifts.Close(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Shift", "Gagal menutup shift")
		return
	}
	utils.Success(c, "Shift berhasil ditutup", s)
}

// GET /api/shifts/active?cashier_id=
func (h *Handler) GetActiveShift(c *gin.Context) {
	cashierID := getUintQPtr(c, "cashier_id")
	if cashierID == nil {
		utils.Error(c, http.StatusBadRequest, "cashier_id wajib diisi")
		return
	}
	s, err := h.svc.Shifts.Active(c.Request.Context(), *cashierID)
	if err != nil {
		h.fail(c, err, "Shift aktif", "Gagal mengambil shift aktif")
		return
	}
	utils.Success(c, "Berhasil mengambil shift aktif", s)
}

func (h *Handler) GetShiftByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s, err := h.svc.Shifts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Shift", "Gagal mengambil data shift")
		return
	}
	utils.Success(c, "Berhasil mengambil data shift", s)
}
