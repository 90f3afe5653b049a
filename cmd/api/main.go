package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pharmacy-inventory/internal/config"
	"go-pharmacy-inventory/internal/handler"
	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/router"
	"go-pharmacy-inventory/internal/seed"
	"go-pharmacy-inventory/internal/service"
	"go-pharmacy-inventory/internal/ws"
	"go-pharmacy-inventory/pkg/logger"
	"go-pharmacy-inventory/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: cfg.AppName,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	// 2. Setup store
	db := repository.NewDB()
	m := metrics.New(cfg.AppName)

	// 3. Seed demo catalog and ledger
	if cfg.SeedDemo {
		n := seed.Load(db)
		m.SetCatalogSize(n)
		zlog.Info("demo data loaded", zap.Int("products", n))
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)

	// 5. Dependency Injection (Wiring Layers)
	svcCfg := service.ServiceConfig{Logger: zlog, Metrics: m, Now: cfg.Clock()}

	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	invService := service.NewInventoryService(productRepo, txRepo, db, wsHub, svcCfg)
	dashService := service.NewDashboardService(db, svcCfg)
	alertService := service.NewAlertService(db, wsHub, svcCfg)
	reportService := service.NewReportService(db, svcCfg)

	app := router.New(router.Handlers{
		Inventory: handler.NewInventoryHandler(invService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Alert:     handler.NewAlertHandler(alertService),
		Report:    handler.NewReportHandler(reportService),
	}, router.Options{
		AppName: cfg.AppName,
		Logger:  zlog,
		Metrics: m,
		Hub:     wsHub,
	})

	// 6. Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return alertService.RunDigest(gctx, cfg.AlertTick)
	})

	g.Go(func() error {
		zlog.Info("server listening", zap.String("port", cfg.Port), zap.String("timezone", cfg.Location().String()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("Shutting down server...")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zlog.Info("Server exited")
}
