package inventory

import (
	"context"
	"fmt"

	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service records and reads inventory movements.
type Service struct {
	repo    Repository
	metrics *observability.Metrics
}

// NewService builds Service instance.
func NewService(repo Repository, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// ListMovements returns a filtered page of movements.
func (s *Service) ListMovements(ctx context.Context, req ListMovementsRequest) ([]Movement, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.ListMovements(ctx, req)
}

// PostAdjustment corrects a product's stock by a signed delta and records
// the movement in the same transaction.
func (s *Service) PostAdjustment(ctx context.Context, userID int64, req CreateAdjustmentRequest) (movement *Movement, err error) {
	defer func() { s.metrics.CountPosting("adjustment", err) }()

	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be non-zero", httpx.ErrValidation)
	}
	if req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product is required", httpx.ErrValidation)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.AdjustProductStock(ctx, req.ProductID, req.Quantity); err != nil {
			return fmt.Errorf("product %d: %w", req.ProductID, err)
		}
		mv := Movement{
			ProductID:    req.ProductID,
			MovementType: MovementAdjustment,
			Quantity:     req.Quantity,
			Notes:        req.Notes,
			CreatedBy:    &userID,
		}
		id, err := tx.InsertAdjustment(ctx, mv)
		if err != nil {
			return fmt.Errorf("insert adjustment: %w", err)
		}
		mv.ID = id
		movement = &mv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
