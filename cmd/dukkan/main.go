package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukkan-erp/dukkan/internal/app"
	"github.com/dukkan-erp/dukkan/internal/auth"
	"github.com/dukkan-erp/dukkan/internal/expenses"
	"github.com/dukkan-erp/dukkan/internal/inventory"
	"github.com/dukkan-erp/dukkan/internal/inventory/preparation"
	"github.com/dukkan-erp/dukkan/internal/masterdata/categories"
	"github.com/dukkan-erp/dukkan/internal/masterdata/products"
	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/cache"
	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/purchasing"
	"github.com/dukkan-erp/dukkan/internal/purchasing/suppliers"
	"github.com/dukkan-erp/dukkan/internal/reports"
	"github.com/dukkan-erp/dukkan/internal/sales"
	"github.com/dukkan-erp/dukkan/internal/sales/customers"
	"github.com/dukkan-erp/dukkan/internal/treasury"
	"github.com/dukkan-erp/dukkan/internal/users"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	tokens := auth.NewTokenManager(redisClient, cfg.TokenTTL)
	authHandler := auth.NewHandler(logger, authService, tokens)
	authMiddleware := auth.Middleware{Tokens: tokens, Repo: authRepo, Logger: logger}

	if cfg.BootstrapAdminPassword != "" {
		created, err := authService.EnsureDefaultAdmin(ctx, cfg.BootstrapAdminUser, cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", slog.String("username", cfg.BootstrapAdminUser))
		}
	}

	if !app.InTestMode() {
		enqueuer := jobs.NewEnqueuer(cfg.RedisAddr)
		defer enqueuer.Close()
		if err := enqueuer.Enqueue(ctx, jobs.NewLowStockScanTask()); err != nil {
			logger.Warn("enqueue low stock scan", slog.Any("error", err))
		}
	}

	productsService := products.NewService(products.NewRepository(pool))
	categoriesService := categories.NewService(categories.NewRepository(pool))
	customersService := customers.NewService(customers.NewRepository(pool))
	suppliersService := suppliers.NewService(suppliers.NewRepository(pool))
	salesService := sales.NewService(sales.NewRepository(pool), metrics)
	purchasingService := purchasing.NewService(purchasing.NewRepository(pool), metrics)
	treasuryService := treasury.NewService(treasury.NewRepository(pool), metrics)
	inventoryService := inventory.NewService(inventory.NewRepository(pool), metrics)
	preparationService := preparation.NewService(preparation.NewRepository(pool))
	expensesService := expenses.NewService(expenses.NewRepository(pool))
	reportsService := reports.NewService(
		reports.NewRepository(pool),
		reports.NewCache(redisClient, cfg.DashboardCacheTTL),
	)
	usersService := users.NewService(users.NewRepository(pool))

	router := app.NewRouter(app.RouterDeps{
		Config:  cfg,
		Metrics: metrics,

		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,

		UsersHandler:       users.NewHandler(logger, usersService),
		ProductsHandler:    products.NewHandler(logger, productsService),
		CategoriesHandler:  categories.NewHandler(logger, categoriesService),
		CustomersHandler:   customers.NewHandler(logger, customersService),
		SuppliersHandler:   suppliers.NewHandler(logger, suppliersService),
		SalesHandler:       sales.NewHandler(logger, salesService),
		PurchasingHandler:  purchasing.NewHandler(logger, purchasingService),
		TreasuryHandler:    treasury.NewHandler(logger, treasuryService),
		InventoryHandler:   inventory.NewHandler(logger, inventoryService, productsService),
		PreparationHandler: preparation.NewHandler(logger, preparationService),
		ExpensesHandler:    expenses.NewHandler(logger, expensesService),
		ReportsHandler:     reports.NewHandler(logger, reportsService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
