package controllers

import (
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetSettings(c *gin.Context) {
	values, err := h.svc.Settings.All(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Pengaturan", "Gagal mengambil pengaturan")
		return
	}
	utils.Success(c, "Berhasil mengambil pengaturan", values)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var input map[string]string
	if !bindJSON(c, &input) {
		return
	}
	values, err := h.svc.Settings.Update(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Pengaturan", "Gagal menyimpan pengaturan")
		return
	}
	utils.Success(c, "Pengaturan berhasil disimpan", values)
}
