package preparation

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service manages preparation lists.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a filtered page of lists.
func (s *Service) List(ctx context.Context, req ListListsRequest) ([]List, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Status != "" && !validStatus(req.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}
	return s.repo.List(ctx, req)
}

// Get returns one list with its items.
func (s *Service) Get(ctx context.Context, id int64) (*ListDetail, error) {
	return s.repo.Get(ctx, id)
}

// Create writes a list and its items in one transaction.
func (s *Service) Create(ctx context.Context, userID int64, req CreateListRequest) (list *List, err error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", httpx.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: list needs at least one item", httpx.ErrValidation)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertList(ctx, List{
			CustomerName: req.CustomerName,
			Status:       StatusPending,
			CreatedBy:    userID,
		})
		if err != nil {
			return fmt.Errorf("insert list: %w", err)
		}
		number := fmt.Sprintf("L%06d", id)
		if err := tx.SetNumber(ctx, id, number); err != nil {
			return fmt.Errorf("set list number: %w", err)
		}
		for _, item := range req.Items {
			if err := tx.InsertItem(ctx, Item{
				ListID:    id,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}); err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
		}
		list = &List{
			ID:           id,
			ListNumber:   number,
			CustomerName: req.CustomerName,
			Status:       StatusPending,
			CreatedBy:    userID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus moves a list between statuses. Completion stamps the
// completed_at time; leaving completion clears it.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, status)
	}
	return s.repo.SetStatus(ctx, id, status, status == StatusCompleted)
}

// ToggleItem flips the prepared flag on one list item and reports the
// new value.
func (s *Service) ToggleItem(ctx context.Context, listID, itemID int64) (bool, error) {
	return s.repo.ToggleItem(ctx, listID, itemID)
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
