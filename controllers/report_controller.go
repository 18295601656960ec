package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nzsnyn/pos-sub000/config"
	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
)

/*
GET /api/reports?type=daily|summary|products|payments
GET /api/reports/export?type=daily|products|payments

Query:
- date_from=YYYY-MM-DD, date_to=YYYY-MM-DD (inklusif, default 30 hari terakhir)
- limit=10 (khusus products)
*/

func (h *Handler) reportParams(c *gin.Context) (service.ReportType, service.DateRange, int, bool) {
	t := service.ReportType(strings.ToLower(c.DefaultQuery("type", string(service.ReportSummary))))
	from, ok := getDatePtr(c, "date_from")
	if !ok {
		return "", service.DateRange{}, 0, false
	}
	to, ok := getDatePtr(c, "date_to")
	if !ok {
		return "", service.DateRange{}, 0, false
	}
	r, err := h.svc.Reports.ResolveRange(from, to)
	if err != nil {
		h.fail(c, err, "Laporan", "Gagal membuat laporan")
		return "", service.DateRange{}, 0, false
	}
	return t, r, getIntQ(c, "limit", 10), true
}

func (h *Handler) GetReport(c *gin.Context) {
	t, r, limit, ok := h.reportParams(c)
	if !ok {
		return
	}
	data, err := h.svc.Reports.Build(c.Request.Context(), t, r, limit)
	if err != nil {
		h.fail(c, err, "Laporan", "Gagal membuat laporan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) ExportReport(c *gin.Context) {
	t, r, limit, ok := h.reportParams(c)
	if !ok {
		return
	}
	f, err := h.svc.Reports.Export(c.Request.Context(), t, r, limit)
	if err != nil {
		h.fail(c, err, "Laporan", "Gagal mengekspor laporan")
		return
	}
	defer f.Close()

	name := fmt.Sprintf("laporan-%s-%s-%s.xlsx", t, r.From.Format("20060102"), r.To.Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Status(http.StatusOK)
	// header sudah terkirim, jadi cukup dicatat
	if err := f.Write(c.Writer); err != nil {
		config.LogError(h.log, "controllers", "ExportReport", "gagal menulis file laporan",
			gin.H{"path": c.FullPath(), "request_id": c.GetString("request_id")}, err)
	}
}

// GET /api/stats/:period?date=YYYY-MM-DD
func (h *Handler) GetStats(c *gin.Context) {
	p := service.Period(strings.ToLower(c.Param("period")))
	if !p.Valid() {
		utils.Error(c, http.StatusBadRequest, "Periode harus daily, weekly atau monthly")
		return
	}
	date, ok := getDatePtr(c, "date")
	if !ok {
		return
	}
	at := h.svc.Now()
	if date != nil {
		at = inLocation(*date, h.svc.Location)
	}
	out, err := h.svc.Stats.Compare(c.Request.Context(), p, at)
	if err != nil {
		h.fail(c, err, "Statistik", "Gagal mengambil statistik")
		return
	}
	utils.Success(c, "Berhasil mengambil statistik", out)
}
