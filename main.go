package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nzsnyn/pos-sub000/config"
	"github.com/nzsnyn/pos-sub000/controllers"
	"github.com/nzsnyn/pos-sub000/middlewares"
	"github.com/nzsnyn/pos-sub000/models"
	"github.com/nzsnyn/pos-sub000/routes"
	"github.com/nzsnyn/pos-sub000/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logg := config.NewLogger(cfg.LogLevel)
	if cfg.LocationErr != nil {
		logg.WithError(cfg.LocationErr).Warn("APP_TIMEZONE tidak valid, batas statistik memakai UTC")
	}

	db, err := config.ConnectDB(cfg, logg)
	if err != nil {
		logg.WithError(err).Fatal("gagal konek database")
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		logg.WithError(err).Fatal("gagal migrasi database")
	}
	if err := config.SeedDefaults(db, cfg); err != nil {
		logg.WithError(err).Fatal("gagal seed data awal")
	}

	rdb, locker := config.ConnectRedis(cfg, logg)

	svc := service.New(db, service.Options{
		Location: cfg.Location,
		Redis:    rdb,
		Locker:   locker,
		Logger:   logg,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(logg))
	r.Use(middlewares.CORS(cfg.CORSOrigins))

	routes.SetupRoutes(r, controllers.NewHandler(svc, db, logg))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.WithField("port", cfg.Port).Info("POS API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("server berhenti")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.WithError(err).Error("server forced to shutdown")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logg.WithError(err).Warn("gagal menutup redis")
		}
	}
	if err := config.CloseDB(db); err != nil {
		logg.WithError(err).Warn("gagal menutup koneksi database")
	}
	logg.Info("server exited")
}
