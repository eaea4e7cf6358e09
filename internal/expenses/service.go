package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service implements expense rules.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one expense.
func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of expenses.
func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.List(ctx, req)
}

// Create records an expense. The date defaults to today.
func (s *Service) Create(ctx context.Context, userID int64, req CreateExpenseRequest) (*Expense, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", httpx.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}

	expense := Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		CreatedBy:   userID,
	}
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		date, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expense_date must be YYYY-MM-DD", httpx.ErrValidation)
		}
		expense.ExpenseDate = date
	}

	id, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	expense.ID = id
	return &expense, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
