package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type fakeRepo struct {
	sales     float64
	purchases float64
	expenses  float64
	counts    Counts
	calls     int
}

func (r *fakeRepo) SalesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	r.calls++
	return r.sales, nil
}

func (r *fakeRepo) PurchasesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	return r.purchases, nil
}

func (r *fakeRepo) ExpensesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	return r.expenses, nil
}

func (r *fakeRepo) EntityCounts(ctx context.Context) (Counts, error) {
	return r.counts, nil
}

func (r *fakeRepo) SalesSeries(ctx context.Context, from, to time.Time, monthly bool) ([]ChartPoint, error) {
	return []ChartPoint{}, nil
}

func (r *fakeRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	return []TopProduct{}, nil
}

func (r *fakeRepo) CashFlow(ctx context.Context, from, to time.Time) ([]CashFlowPoint, error) {
	return []CashFlowPoint{}, nil
}

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl)
}

func TestDashboardComputesProfit(t *testing.T) {
	repo := &fakeRepo{sales: 100, purchases: 40, expenses: 10, counts: Counts{Products: 3}}
	service := NewService(repo, nil)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 100.0, dashboard.Today.Sales, 1e-9)
	require.InDelta(t, 50.0, dashboard.Today.Profit, 1e-9)
	require.Equal(t, 3, dashboard.Counts.Products)
}

func TestDashboardEmptyRangesReturnZero(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, nil)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	require.Zero(t, dashboard.Today.Sales)
	require.Zero(t, dashboard.Year.Profit)
	require.Zero(t, dashboard.Counts.LowStock)
}

func TestDashboardUsesCache(t *testing.T) {
	repo := &fakeRepo{sales: 42}
	service := NewService(repo, newTestCache(t, time.Minute))

	first, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	callsAfterFirst := repo.calls

	second, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, callsAfterFirst, repo.calls)
	require.Equal(t, first.Today.Sales, second.Today.Sales)
}

func TestSalesChartRejectsUnknownPeriod(t *testing.T) {
	service := NewService(&fakeRepo{}, nil)

	_, err := service.SalesChart(context.Background(), "decade")
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestSalesChartKnownPeriods(t *testing.T) {
	service := NewService(&fakeRepo{}, nil)

	for _, period := range []string{"week", "month", "year"} {
		points, err := service.SalesChart(context.Background(), period)
		require.NoError(t, err)
		require.NotNil(t, points)
	}
}
