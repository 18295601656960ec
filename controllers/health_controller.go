package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POS API is running"})
}

// Healthz ping ke database dengan timeout pendek.
func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.WithError(err).Warn("healthz: database tidak bisa di-ping")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": "Database tidak tersedia"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
