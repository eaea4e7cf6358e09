package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dukkan-erp/dukkan/internal/reports"
)

// DailySummaryHandler logs yesterday's trading totals.
type DailySummaryHandler struct {
	logger *slog.Logger
	repo   reports.Repository
	now    func() time.Time
}

// NewDailySummaryHandler builds DailySummaryHandler instance.
func NewDailySummaryHandler(logger *slog.Logger, repo reports.Repository) *DailySummaryHandler {
	return &DailySummaryHandler{logger: logger, repo: repo, now: time.Now}
}

// ProcessTask implements asynq.Handler.
func (h *DailySummaryHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	now := h.now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -1)

	sales, err := h.repo.SalesTotal(ctx, from, to)
	if err != nil {
		return err
	}
	purchases, err := h.repo.PurchasesTotal(ctx, from, to)
	if err != nil {
		return err
	}
	expenses, err := h.repo.ExpensesTotal(ctx, from, to)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	h.logger.Info("daily summary",
		slog.String("date", from.Format("2006-01-02")),
		slog.String("sales", p.Sprintf("%.2f", sales)),
		slog.String("purchases", p.Sprintf("%.2f", purchases)),
		slog.String("expenses", p.Sprintf("%.2f", expenses)),
		slog.String("profit", p.Sprintf("%.2f", sales-purchases-expenses)),
	)
	return nil
}
