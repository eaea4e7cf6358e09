package treasury

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
	"github.com/dukkan-erp/dukkan/internal/shared"
)

// Handler manages receipt and voucher endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountReceiptRoutes registers payment receipt routes.
func (h *Handler) MountReceiptRoutes(r chi.Router) {
	r.Get("/", h.listReceipts)
	r.Post("/", h.postReceipt)
	r.Get("/{id}", h.getReceipt)
}

// MountVoucherRoutes registers payment voucher routes.
func (h *Handler) MountVoucherRoutes(r chi.Router) {
	r.Get("/", h.listVouchers)
	r.Post("/", h.postVoucher)
	r.Get("/{id}", h.getVoucher)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageParams(r, 20)
	items, total, err := h.service.ListReceipts(r.Context(), ListRequest{
		Search: r.URL.Query().Get("search"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		h.logger.Error("list receipts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Receipt{}
	}
	meta := shared.NewPagination(page, perPage, total)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"receipts":     items,
		"total":        meta.Total,
		"pages":        meta.TotalPages,
		"current_page": meta.Page,
	})
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid receipt id")
		return
	}
	receipt, err := h.service.GetReceipt(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"receipt": receipt})
}

func (h *Handler) postReceipt(w http.ResponseWriter, r *http.Request) {
	var req CreateReceiptRequest
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
	receipt, err := h.service.PostReceipt(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Error("post receipt", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("receipt posted",
		slog.String("receipt_number", receipt.ReceiptNumber),
		slog.Float64("amount", receipt.Amount),
	)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":        "receipt created",
		"receipt_id":     receipt.ID,
		"receipt_number": receipt.ReceiptNumber,
	})
}

func (h *Handler) listVouchers(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageParams(r, 20)
	items, total, err := h.service.ListVouchers(r.Context(), ListRequest{
		Search: r.URL.Query().Get("search"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		h.logger.Error("list vouchers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Voucher{}
	}
	meta := shared.NewPagination(page, perPage, total)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"vouchers":     items,
		"total":        meta.Total,
		"pages":        meta.TotalPages,
		"current_page": meta.Page,
	})
}

func (h *Handler) getVoucher(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid voucher id")
		return
	}
	voucher, err := h.service.GetVoucher(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"voucher": voucher})
}

func (h *Handler) postVoucher(w http.ResponseWriter, r *http.Request) {
	var req CreateVoucherRequest
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
	voucher, err := h.service.PostVoucher(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Error("post voucher", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("voucher posted",
		slog.String("voucher_number", voucher.VoucherNumber),
		slog.Float64("amount", voucher.Amount),
	)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":        "voucher created",
		"voucher_id":     voucher.ID,
		"voucher_number": voucher.VoucherNumber,
	})
}
