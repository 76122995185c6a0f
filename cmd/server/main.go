package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/config"
	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/repository/blob"
	"github.com/mamadbah2/factory/internal/repository/filestore"
	"github.com/mamadbah2/factory/internal/repository/mongodb"
	"github.com/mamadbah2/factory/internal/repository/sheets"
	"github.com/mamadbah2/factory/internal/scheduler"
	"github.com/mamadbah2/factory/internal/server/handlers"
	"github.com/mamadbah2/factory/internal/server/router"
	"github.com/mamadbah2/factory/internal/store"
	factorysvc "github.com/mamadbah2/factory/internal/service/factory"
	reportingsvc "github.com/mamadbah2/factory/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/factory/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/factory/pkg/clients/whatsapp"
	"github.com/mamadbah2/factory/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var blobs blob.Repository
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		blobs = mongoRepo
	default:
		fileRepo, err := filestore.New(cfg.Storage.Dir, logger.Named(baseLogger, "repo.filestore"))
		if err != nil {
			baseLogger.Fatal("failed to init file repository", zap.Error(err))
		}
		blobs = fileRepo
	}

	stateStore := store.New(blobs, logger.Named(baseLogger, "store"))
	if err := stateStore.Load(ctx); err != nil {
		baseLogger.Fatal("failed to load factory state", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := stateStore.Flush(flushCtx); err != nil {
			baseLogger.Error("failed to flush factory state", zap.Error(err))
		}
	}()

	policy, err := ledger.ParsePolicy(cfg.Ledger.ReversalPolicy)
	if err != nil {
		baseLogger.Fatal("invalid ledger policy", zap.Error(err))
	}
	inventory := ledger.New(policy, logger.Named(baseLogger, "ledger"))

	factoryService := factorysvc.NewService(stateStore, inventory, logger.Named(baseLogger, "svc.factory"),
		factorysvc.WithCustomerWriteOff(cfg.Ledger.CustomerDelete == config.CustomerDeleteWriteOff))

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	} else {
		baseLogger.Warn("google sheets not configured, daily export disabled")
	}
	reportingService := reportingsvc.NewService(stateStore, sheetsRepo, loc, logger.Named(baseLogger, "svc.reporting"))

	routes := router.Handlers{
		Factory: handlers.NewFactoryHandler(factoryService, logger.Named(baseLogger, "handlers.factory")),
		Reports: handlers.NewReportsHandler(reportingService, logger.Named(baseLogger, "handlers.reports")),
	}

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, reportingService, logger.Named(baseLogger, "svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
		notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp not configured, notifications disabled")
	}

	engine := router.New(routes, logger.Named(baseLogger, "router"))

	var exporter scheduler.Exporter
	if sheetsRepo != nil {
		exporter = reportingService
	}
	sched, err := scheduler.NewScheduler(cfg.Reporting, exporter, notifier, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("reversal_policy", string(inventory.Policy())))
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
