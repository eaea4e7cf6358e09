package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// DefaultUnit is used when no unit is supplied.
const DefaultUnit = "piece"

// Service implements product rules.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of products.
func (s *Service) List(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.List(ctx, req)
}

// ListLowStock returns products at or under their minimum stock.
func (s *Service) ListLowStock(ctx context.Context) ([]Product, error) {
	return s.repo.ListLowStock(ctx)
}

// Create adds a product.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	unit := req.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	product := Product{
		Name:          req.Name,
		Description:   req.Description,
		Barcode:       req.Barcode,
		CategoryID:    req.CategoryID,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Unit:          unit,
	}
	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product.ID = id
	return &product, nil
}

// Update applies partial changes to a product.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	if req.PurchasePrice != nil {
		updates["purchase_price"] = *req.PurchasePrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.MinStock != nil {
		updates["min_stock"] = *req.MinStock
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
