package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/config"
	"github.com/HopeyCodeDS/mineralflow/internal/scheduler"
	"github.com/HopeyCodeDS/mineralflow/internal/server/handlers"
	"github.com/HopeyCodeDS/mineralflow/internal/server/router"
	"github.com/HopeyCodeDS/mineralflow/internal/service/collections"
	"github.com/HopeyCodeDS/mineralflow/internal/service/poll"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
	"github.com/HopeyCodeDS/mineralflow/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.DevLog))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	newGateway := func(baseURL, name string) *gateway.Client {
		return gateway.New(baseURL, cfg.Backends.BearerToken, cfg.Backends.Timeout, baseLogger.Named("gateway."+name))
	}

	backends := collections.Backends{
		Landside:    landside.NewClient(newGateway(cfg.Backends.LandsideURL, "landside")),
		Warehousing: warehousing.NewClient(newGateway(cfg.Backends.WarehousingURL, "warehousing")),
		Invoicing:   invoicing.NewClient(newGateway(cfg.Backends.InvoicingURL, "invoicing")),
		Waterside:   waterside.NewClient(newGateway(cfg.Backends.WatersideURL, "waterside")),
	}

	st := store.New(baseLogger.Named("store"))
	collections.Register(st, cfg.Cache, backends)

	onSitePoller := poll.New(func(ctx context.Context) (any, error) {
		return backends.Landside.TrucksOnSiteCount(ctx)
	}, poll.Options{
		Interval:   cfg.Cache.TrucksInterval,
		Immediate:  true,
		MaxRetries: cfg.Cache.MaxRetries,
		RetryDelay: cfg.Cache.RetryDelay,
	}, baseLogger.Named("poll.onsite"))

	engine := router.New(router.Handlers{
		Snapshots:   handlers.NewSnapshotHandler(st, baseLogger.Named("handlers.snapshots")),
		Landside:    handlers.NewLandsideHandler(backends.Landside, st, baseLogger.Named("handlers.landside")),
		Warehousing: handlers.NewWarehousingHandler(backends.Warehousing, st, baseLogger.Named("handlers.warehousing")),
		Invoicing:   handlers.NewInvoicingHandler(backends.Invoicing, st, baseLogger.Named("handlers.invoicing")),
		Waterside:   handlers.NewWatersideHandler(backends.Waterside, st, baseLogger.Named("handlers.waterside")),
		OnSiteCount: handlers.NewPollHandler(onSitePoller),
	}, cfg.Server.AllowedOrigins, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(st, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	onSitePoller.Start(ctx)
	defer onSitePoller.Stop()

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
