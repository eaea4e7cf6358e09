// Package jobs holds the asynq task definitions and handlers for the
// background worker.
package jobs

import (
	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TypeDailySummary = "report:daily_summary"
	TypeLowStockScan = "inventory:low_stock_scan"
)

// NewDailySummaryTask builds the daily summary task.
func NewDailySummaryTask() *asynq.Task {
	return asynq.NewTask(TypeDailySummary, nil)
}

// NewLowStockScanTask builds the low stock scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TypeLowStockScan, nil)
}
