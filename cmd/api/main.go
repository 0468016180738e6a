package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/config"
	dbpkg "github.com/BruksfildServices01/troia-reservas/internal/db"
	"github.com/BruksfildServices01/troia-reservas/internal/events"
	"github.com/BruksfildServices01/troia-reservas/internal/export"
	"github.com/BruksfildServices01/troia-reservas/internal/infra/cache"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
	"github.com/BruksfildServices01/troia-reservas/internal/routes"
	ucReservation "github.com/BruksfildServices01/troia-reservas/internal/usecase/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/web"
)

func main() {

	cfg := config.Load()

	lg, err := logger.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("failed to start logger: %v", err)
	}
	defer lg.Close()

	db := dbpkg.NewDB(cfg, lg)

	// ======================================================
	// 🔧 OPCIONAIS (Redis / RabbitMQ / S3)
	// ======================================================
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(cfg.Redis, lg)
		if err != nil {
			lg.Warn("CACHE", fmt.Sprintf("running without Redis: %v", err))
		} else {
			rdb = client
			defer rdb.Close()
		}
	}

	sinks := []audit.Sink{audit.New(db)}

	var publisher *events.Publisher
	if cfg.AMQPUrl != "" {
		publisher = events.NewPublisher(cfg.AMQPUrl, lg)
		sinks = append(sinks, publisher)
		lg.Info("EVENTS", fmt.Sprintf("Publishing audit events to queue %s", events.QueueReservationEvents))
	}

	dispatcher := audit.NewDispatcher(lg, sinks...)

	// interface nil de verdade quando não há bucket
	var exporter ucReservation.Exporter
	if cfg.S3.Enabled() {
		exporter = export.NewS3Exporter(export.NewS3Client(cfg.S3), cfg.S3.Bucket, cfg.S3.Prefix)
		lg.Info("EXPORT", fmt.Sprintf("CSV exports go to s3://%s/%s", cfg.S3.Bucket, cfg.S3.Prefix))
	}

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxies); err != nil {
		lg.Fatal("SERVER", fmt.Sprintf("invalid TRUSTED_PROXIES: %v", err))
	}
	r.Use(gin.Recovery(), middleware.RequestLogger(lg))
	r.SetHTMLTemplate(web.Templates())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      lg,
		Audit:    dispatcher,
		Redis:    rdb,
		Exporter: exporter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("SERVER", fmt.Sprintf("Server running on %s", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("SERVER", fmt.Sprintf("failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("SERVER", "Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("SERVER", fmt.Sprintf("forced shutdown: %v", err))
	}

	// depois do servidor: nenhum handler novo enfileira eventos
	dispatcher.Close()
	if publisher != nil {
		publisher.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
