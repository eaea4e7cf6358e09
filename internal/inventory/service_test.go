package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type memoryRepo struct {
	stock     map[int64]float64
	movements []Movement
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{stock: make(map[int64]float64), nextID: 1}
}

func (r *memoryRepo) ListMovements(ctx context.Context, req ListMovementsRequest) ([]Movement, int, error) {
	var out []Movement
	for _, m := range r.movements {
		if req.ProductID > 0 && m.ProductID != req.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	staged := &memoryRepo{stock: make(map[int64]float64), nextID: r.nextID}
	for k, v := range r.stock {
		staged.stock[k] = v
	}
	staged.movements = append(staged.movements, r.movements...)
	if err := fn(ctx, &memoryTx{repo: staged}); err != nil {
		return err
	}
	*r = *staged
	return nil
}

type memoryTx struct {
	repo *memoryRepo
}

func (t *memoryTx) AdjustProductStock(ctx context.Context, productID int64, delta float64) error {
	if _, ok := t.repo.stock[productID]; !ok {
		return httpx.ErrNotFound
	}
	t.repo.stock[productID] += delta
	return nil
}

func (t *memoryTx) InsertAdjustment(ctx context.Context, movement Movement) (int64, error) {
	id := t.repo.nextID
	t.repo.nextID++
	movement.ID = id
	t.repo.movements = append(t.repo.movements, movement)
	return id, nil
}

func TestPostAdjustmentMovesStock(t *testing.T) {
	repo := newMemoryRepo()
	repo.stock[1] = 10
	service := NewService(repo, nil)

	movement, err := service.PostAdjustment(context.Background(), 2, CreateAdjustmentRequest{
		ProductID: 1,
		Quantity:  -3,
	})
	require.NoError(t, err)
	require.Equal(t, MovementAdjustment, movement.MovementType)
	require.InDelta(t, 7.0, repo.stock[1], 1e-9)
	require.Len(t, repo.movements, 1)
}

func TestPostAdjustmentUnknownProduct(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, nil)

	_, err := service.PostAdjustment(context.Background(), 2, CreateAdjustmentRequest{
		ProductID: 404,
		Quantity:  1,
	})
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.movements)
}

func TestPostAdjustmentRejectsZeroQuantity(t *testing.T) {
	repo := newMemoryRepo()
	repo.stock[1] = 10
	service := NewService(repo, nil)

	_, err := service.PostAdjustment(context.Background(), 2, CreateAdjustmentRequest{
		ProductID: 1,
		Quantity:  0,
	})
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestListMovementsFiltersByProduct(t *testing.T) {
	repo := newMemoryRepo()
	repo.stock[1] = 10
	repo.stock[2] = 10
	service := NewService(repo, nil)

	_, err := service.PostAdjustment(context.Background(), 1, CreateAdjustmentRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = service.PostAdjustment(context.Background(), 1, CreateAdjustmentRequest{ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	items, total, err := service.ListMovements(context.Background(), ListMovementsRequest{ProductID: 2})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, int64(2), items[0].ProductID)
}
