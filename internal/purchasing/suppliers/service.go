package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service implements supplier rules.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one supplier.
func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of suppliers.
func (s *Service) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.List(ctx, req)
}

// Create adds a supplier with a zero opening balance.
func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}
	supplier := Supplier{Name: req.Name, Phone: req.Phone, Address: req.Address}
	id, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	supplier.ID = id
	return &supplier, nil
}

// Update applies partial changes to a supplier.
func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (*Supplier, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a supplier.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
