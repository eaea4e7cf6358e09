package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukkan-erp/dukkan/internal/app"
	"github.com/dukkan-erp/dukkan/internal/masterdata/products"
	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/reports"
	"github.com/dukkan-erp/dukkan/jobs"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	summary := jobs.NewDailySummaryHandler(logger, reports.NewRepository(pool))
	lowStock := jobs.NewLowStockScanHandler(logger, products.NewRepository(pool))

	server := jobs.NewServer(cfg.RedisAddr)
	mux := jobs.NewMux(summary, lowStock)

	scheduler, err := jobs.NewScheduler(cfg.RedisAddr, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("worker starting")
		if err := server.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("worker shutting down")
	scheduler.Shutdown()
	server.Shutdown()
	return nil
}
