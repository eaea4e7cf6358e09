package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

const dashboardCacheKey = "reports:dashboard"

// Service computes the read-only reports.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
	now   func() time.Time
}

// NewService builds Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Dashboard returns the aggregated overview. Concurrent callers share one
// computation and results are cached for a short TTL.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
	if err == nil && hit {
		return &cached, nil
	}

	v, err, _ := s.group.Do(dashboardCacheKey, func() (interface{}, error) {
		dashboard, err := s.computeDashboard(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, dashboardCacheKey, dashboard)
		return dashboard, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dashboard), nil
}

func (s *Service) computeDashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	tomorrow := startOfDay(now).AddDate(0, 0, 1)

	periods := []struct {
		from time.Time
		dst  *PeriodTotals
	}{
		{startOfDay(now), nil},
		{startOfDay(now).AddDate(0, 0, -6), nil},
		{time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil},
		{time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil},
	}

	var dashboard Dashboard
	periods[0].dst = &dashboard.Today
	periods[1].dst = &dashboard.Week
	periods[2].dst = &dashboard.Month
	periods[3].dst = &dashboard.Year

	for _, p := range periods {
		totals, err := s.periodTotals(ctx, p.from, tomorrow)
		if err != nil {
			return nil, err
		}
		*p.dst = totals
	}

	counts, err := s.repo.EntityCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("entity counts: %w", err)
	}
	dashboard.Counts = counts
	return &dashboard, nil
}

func (s *Service) periodTotals(ctx context.Context, from, to time.Time) (PeriodTotals, error) {
	var totals PeriodTotals
	var err error
	if totals.Sales, err = s.repo.SalesTotal(ctx, from, to); err != nil {
		return totals, fmt.Errorf("sales total: %w", err)
	}
	if totals.Purchases, err = s.repo.PurchasesTotal(ctx, from, to); err != nil {
		return totals, fmt.Errorf("purchases total: %w", err)
	}
	if totals.Expenses, err = s.repo.ExpensesTotal(ctx, from, to); err != nil {
		return totals, fmt.Errorf("expenses total: %w", err)
	}
	totals.Profit = totals.Sales - totals.Purchases - totals.Expenses
	return totals, nil
}

// SalesChart returns the sales time series for period week, month or year.
func (s *Service) SalesChart(ctx context.Context, period string) ([]ChartPoint, error) {
	now := s.now()
	to := startOfDay(now).AddDate(0, 0, 1)

	var from time.Time
	monthly := false
	switch period {
	case "week":
		from = startOfDay(now).AddDate(0, 0, -6)
	case "month":
		from = startOfDay(now).AddDate(0, 0, -29)
	case "year":
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		monthly = true
	default:
		return nil, fmt.Errorf("%w: unknown period %q", httpx.ErrValidation, period)
	}
	return s.repo.SalesSeries(ctx, from, to, monthly)
}

// TopProducts returns the ten best sellers by revenue for the current month.
func (s *Service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := startOfDay(now).AddDate(0, 0, 1)
	return s.repo.TopProducts(ctx, from, to, 10)
}

// CashFlow returns daily cash in and out for the current month.
func (s *Service) CashFlow(ctx context.Context) ([]CashFlowPoint, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := startOfDay(now).AddDate(0, 0, 1)
	return s.repo.CashFlow(ctx, from, to)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
