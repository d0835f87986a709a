package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/config"
	"github.com/jean1991/creditcarbon/internal/repository/mongodb"
	"github.com/jean1991/creditcarbon/internal/server/handlers"
	"github.com/jean1991/creditcarbon/internal/server/router"
	"github.com/jean1991/creditcarbon/internal/service/charts"
	exportsvc "github.com/jean1991/creditcarbon/internal/service/export"
	"github.com/jean1991/creditcarbon/internal/service/render"
	reportsvc "github.com/jean1991/creditcarbon/internal/service/reports"
	"github.com/jean1991/creditcarbon/pkg/clients/gfw"
	"github.com/jean1991/creditcarbon/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	satelliteClient := gfw.NewClient(cfg.GFW, logger.Named(baseLogger, "clients.gfw"))
	chartBuilder := charts.NewBuilder(logger.Named(baseLogger, "svc.charts"))

	branding := render.LoadBranding(cfg.Export, logger.Named(baseLogger, "svc.render"))
	renderer := render.NewRenderer(branding, logger.Named(baseLogger, "svc.render"))

	reportsSvc := reportsvc.NewService(store, logger.Named(baseLogger, "svc.reports"))
	exportSvc := exportsvc.NewService(store, satelliteClient, chartBuilder, renderer, cfg.Export.Dir, logger.Named(baseLogger, "svc.export"))

	satelliteHandler := handlers.NewSatelliteHandler(satelliteClient, logger.Named(baseLogger, "handlers.satellite"))
	reportHandler := handlers.NewReportHandler(reportsSvc, exportSvc, logger.Named(baseLogger, "handlers.reports"))
	engine := router.New(satelliteHandler, reportHandler, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
