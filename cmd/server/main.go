package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/config"
	"github.com/ecocarvao/backend/internal/repository/mongodb"
	"github.com/ecocarvao/backend/internal/scheduler"
	"github.com/ecocarvao/backend/internal/server/handlers"
	"github.com/ecocarvao/backend/internal/server/router"
	dashboardsvc "github.com/ecocarvao/backend/internal/service/dashboard"
	reportsvc "github.com/ecocarvao/backend/internal/service/report"
	"github.com/ecocarvao/backend/pkg/clients/viacep"
	"github.com/ecocarvao/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	loc := cfg.Location()

	reportSvc := reportsvc.NewService(store, loc, cfg.Query.Timeout, baseLogger.Named("svc.report"))
	exporter := reportsvc.NewExporter(reportSvc, baseLogger.Named("svc.report.export"))
	dashboardSvc := dashboardsvc.NewService(store, loc, baseLogger.Named("svc.dashboard"))
	cepClient := viacep.NewClient(cfg.ViaCEP.BaseURL)

	reportHandler := handlers.NewReportHandler(reportSvc, exporter, baseLogger.Named("handlers.report"))
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, baseLogger.Named("handlers.dashboard"))
	cepHandler := handlers.NewCEPHandler(cepClient, baseLogger.Named("handlers.cep"))

	engine := router.New(reportHandler, dashboardHandler, cepHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, exporter, loc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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
