package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dukkan-erp/dukkan/internal/masterdata/products"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
	"github.com/dukkan-erp/dukkan/internal/shared"
)

// Handler manages inventory endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	products  *products.Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, productsService *products.Service) *Handler {
	return &Handler{logger: logger, service: service, products: productsService, validator: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/movements", h.listMovements)
	r.Post("/adjustments", h.postAdjustment)
	r.Get("/low-stock", h.lowStock)
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageParams(r, 20)
	var productID int64
	if v := r.URL.Query().Get("product_id"); v != "" {
		productID, _ = strconv.ParseInt(v, 10, 64)
	}

	items, total, err := h.service.ListMovements(r.Context(), ListMovementsRequest{
		ProductID: productID,
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	})
	if err != nil {
		h.logger.Error("list movements", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Movement{}
	}
	meta := shared.NewPagination(page, perPage, total)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"movements":    items,
		"total":        meta.Total,
		"pages":        meta.TotalPages,
		"current_page": meta.Page,
	})
}

func (h *Handler) postAdjustment(w http.ResponseWriter, r *http.Request) {
	var req CreateAdjustmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	movement, err := h.service.PostAdjustment(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Error("post adjustment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("stock adjusted",
		slog.Int64("product_id", movement.ProductID),
		slog.Float64("quantity", movement.Quantity),
	)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":     "adjustment recorded",
		"movement_id": movement.ID,
	})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.products.ListLowStock(r.Context())
	if err != nil {
		h.logger.Error("list low stock", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]products.ProductView, 0, len(items))
	for _, p := range items {
		views = append(views, products.NewProductView(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": views, "count": len(views)})
}
