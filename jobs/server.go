package jobs

import (
	"log/slog"

	"github.com/hibiken/asynq"
)

// NewServer builds the asynq worker server.
func NewServer(redisAddr string) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 4,
			Queues:      map[string]int{"default": 1},
		},
	)
}

// NewMux registers the task handlers.
func NewMux(summary *DailySummaryHandler, lowStock *LowStockScanHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeDailySummary, summary)
	mux.Handle(TypeLowStockScan, lowStock)
	return mux
}

// NewScheduler enqueues the recurring tasks: a daily summary shortly after
// midnight and a low stock scan every 30 minutes.
func NewScheduler(redisAddr string, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: redisAddr}, nil)

	if _, err := scheduler.Register("5 0 * * *", NewDailySummaryTask()); err != nil {
		return nil, err
	}
	if _, err := scheduler.Register("*/30 * * * *", NewLowStockScanTask()); err != nil {
		return nil, err
	}
	logger.Info("scheduler configured",
		slog.String("daily_summary", "5 0 * * *"),
		slog.String("low_stock_scan", "*/30 * * * *"),
	)
	return scheduler, nil
}
