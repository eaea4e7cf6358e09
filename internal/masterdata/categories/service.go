package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service implements category rules.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories with product counts.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Get returns one category.
func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a category.
func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	category := Category{Name: req.Name, Description: req.Description}
	id, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	category.ID = id
	return &category, nil
}

// Update applies partial changes to a category.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*Category, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
