package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dukkan-erp/dukkan/internal/auth"
	"github.com/dukkan-erp/dukkan/internal/expenses"
	"github.com/dukkan-erp/dukkan/internal/inventory"
	"github.com/dukkan-erp/dukkan/internal/inventory/preparation"
	"github.com/dukkan-erp/dukkan/internal/masterdata/categories"
	"github.com/dukkan-erp/dukkan/internal/masterdata/products"
	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
	"github.com/dukkan-erp/dukkan/internal/purchasing"
	"github.com/dukkan-erp/dukkan/internal/purchasing/suppliers"
	"github.com/dukkan-erp/dukkan/internal/reports"
	"github.com/dukkan-erp/dukkan/internal/sales"
	"github.com/dukkan-erp/dukkan/internal/sales/customers"
	"github.com/dukkan-erp/dukkan/internal/treasury"
	"github.com/dukkan-erp/dukkan/internal/users"
)

// RouterDeps carries the wired handlers for route registration.
type RouterDeps struct {
	Config  *Config
	Metrics *observability.Metrics

	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware

	UsersHandler       *users.Handler
	ProductsHandler    *products.Handler
	CategoriesHandler  *categories.Handler
	CustomersHandler   *customers.Handler
	SuppliersHandler   *suppliers.Handler
	SalesHandler       *sales.Handler
	PurchasingHandler  *purchasing.Handler
	TreasuryHandler    *treasury.Handler
	InventoryHandler   *inventory.Handler
	PreparationHandler *preparation.Handler
	ExpensesHandler    *expenses.Handler
	ReportsHandler     *reports.Handler
}

// NewRouter assembles the HTTP routing tree.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(deps.Config.AppRequestTimeout))
	r.Use(SecureHeaders(deps.Config.IsProduction()))
	r.Use(deps.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(LoginRateLimit())
			deps.AuthHandler.MountRoutes(public)
		})

		api.Group(func(private chi.Router) {
			private.Use(deps.AuthMiddleware.RequireUser)

			deps.AuthHandler.MountProtectedRoutes(private)

			private.Route("/products", deps.ProductsHandler.MountRoutes)
			private.Route("/categories", deps.CategoriesHandler.MountRoutes)
			private.Route("/customers", deps.CustomersHandler.MountRoutes)
			private.Route("/suppliers", deps.SuppliersHandler.MountRoutes)
			private.Route("/sales/invoices", deps.SalesHandler.MountRoutes)
			private.Route("/purchases/invoices", deps.PurchasingHandler.MountRoutes)
			private.Route("/payment-receipts", deps.TreasuryHandler.MountReceiptRoutes)
			private.Route("/payment-vouchers", deps.TreasuryHandler.MountVoucherRoutes)
			private.Route("/inventory", deps.InventoryHandler.MountRoutes)
			private.Route("/preparation-lists", deps.PreparationHandler.MountRoutes)
			private.Route("/expenses", deps.ExpensesHandler.MountRoutes)
			private.Route("/reports", deps.ReportsHandler.MountRoutes)

			private.Route("/users", func(admin chi.Router) {
				admin.Use(deps.AuthMiddleware.RequireAdmin)
				deps.UsersHandler.MountRoutes(admin)
			})
		})
	})

	return r
}
