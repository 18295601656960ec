package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nzsnyn/pos-sub000/config"
	"github.com/nzsnyn/pos-sub000/service"
	"github.com/nzsnyn/pos-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler memegang semua dependency HTTP. Dibuat sekali di main.
type Handler struct {
	svc *service.Services
	db  *gorm.DB
	log *logrus.Logger
}

func NewHandler(svc *service.Services, db *gorm.DB, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{svc: svc, db: db, log: log}
}

// fail memetakan error service ke status HTTP.
// entity dipakai untuk pesan 404, failMsg untuk pesan 500.
func (h *Handler) fail(c *gin.Context, err error, entity, failMsg string) {
	var (
		stockErr *service.InsufficientStockError
		valErr   *service.ValidationError
		stateErr *service.StateError
	)
	switch {
	case errors.As(err, &stockErr):
		utils.Error(c, http.StatusBadRequest, stockErr.Error())
	case errors.As(err, &valErr):
		utils.Error(c, http.StatusBadRequest, valErr.Msg)
	case errors.As(err, &stateErr):
		utils.Error(c, http.StatusBadRequest, stateErr.Msg)
	case errors.Is(err, service.ErrNotFound):
		utils.Error(c, http.StatusNotFound, entity+" tidak ditemukan")
	case errors.Is(err, service.ErrAlreadyProcessed):
		utils.Error(c, http.StatusBadRequest, "Data sudah diproses oleh permintaan lain")
	default:
		config.LogError(h.log, "controllers", c.HandlerName(), failMsg, gin.H{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}, err)
		utils.Error(c, http.StatusInternalServerError, failMsg)
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "ID tidak valid")
		return 0, false
	}
	return uint(id), true
}

// ================= Query helpers =================

func getIntQ(c *gin.Context, key string, def int) int {
	v, _ := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if v <= 0 {
		return def
	}
	return v
}

func getUintQPtr(c *gin.Context, key string) *uint {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			u := uint(n)
			return &u
		}
	}
	return nil
}

func getBoolQPtr(c *gin.Context, key string) *bool {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

// getDatePtr membaca tanggal YYYY-MM-DD. ok=false kalau ada isinya tapi formatnya salah.
func getDatePtr(c *gin.Context, key string) (*time.Time, bool) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Format tanggal "+key+" harus YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// inLocation menganggap tanggal hasil parse sebagai tanggal kalender di zona toko.
func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
