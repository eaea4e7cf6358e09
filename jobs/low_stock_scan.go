package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dukkan-erp/dukkan/internal/masterdata/products"
)

// LowStockScanHandler warns about products at or under their minimum stock.
type LowStockScanHandler struct {
	logger *slog.Logger
	repo   products.Repository
}

// NewLowStockScanHandler builds LowStockScanHandler instance.
func NewLowStockScanHandler(logger *slog.Logger, repo products.Repository) *LowStockScanHandler {
	return &LowStockScanHandler{logger: logger, repo: repo}
}

// ProcessTask implements asynq.Handler.
func (h *LowStockScanHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	items, err := h.repo.ListLowStock(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		h.logger.Info("low stock scan clean")
		return nil
	}
	for _, p := range items {
		h.logger.Warn("low stock",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Float64("stock_quantity", p.StockQuantity),
			slog.Float64("min_stock", p.MinStock),
		)
	}
	return nil
}
