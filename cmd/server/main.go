package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/bekzodm/tuxumpos/internal/config"
	"github.com/bekzodm/tuxumpos/internal/repository/mongodb"
	"github.com/bekzodm/tuxumpos/internal/repository/sheets"
	"github.com/bekzodm/tuxumpos/internal/scheduler"
	"github.com/bekzodm/tuxumpos/internal/server/handlers"
	"github.com/bekzodm/tuxumpos/internal/server/router"
	ledgersvc "github.com/bekzodm/tuxumpos/internal/service/ledger"
	"github.com/bekzodm/tuxumpos/internal/service/notify"
	reportingsvc "github.com/bekzodm/tuxumpos/internal/service/reporting"
	"github.com/bekzodm/tuxumpos/pkg/clients/webhook"
	"github.com/bekzodm/tuxumpos/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.Ledger.SnapshotKey)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Optional spreadsheet mirror
	var mirror ledgersvc.RowAppender
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = sheetsRepo
		baseLogger.Info("spreadsheet mirror enabled")
	} else {
		baseLogger.Warn("spreadsheet mirror disabled, sales are kept in mongodb only")
	}

	// Optional alert webhook
	var notifier notify.Notifier
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(webhook.NewClient(cfg.Alerts), baseLogger.Named("notify.webhook"))
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, stock alerts disabled")
	}

	ledgerSvc := ledgersvc.NewService(context.Background(), mongoRepo, mirror, notifier, baseLogger.Named("svc.ledger"))
	reportingSvc := reportingsvc.NewService(ledgerSvc, mongoRepo, baseLogger.Named("svc.reporting"))

	ledgerHandler := handlers.NewLedgerHandler(ledgerSvc, baseLogger.Named("handlers.ledger"))
	engine := router.New(ledgerHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"))
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
