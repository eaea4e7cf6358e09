package purchasing

import (
	"context"
	"fmt"

	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service posts and reads purchase invoices.
type Service struct {
	repo    Repository
	metrics *observability.Metrics
}

// NewService builds Service instance.
func NewService(repo Repository, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// List returns a filtered page of invoices.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.List(ctx, req)
}

// Get returns one invoice with its lines.
func (s *Service) Get(ctx context.Context, id int64) (*InvoiceDetail, error) {
	return s.repo.Get(ctx, id)
}

// Post writes an invoice, its lines, stock increments and movements in
// one transaction. A missing product or supplier fails the whole posting.
func (s *Service) Post(ctx context.Context, userID int64, req CreateInvoiceRequest) (result *PostResult, err error) {
	defer func() { s.metrics.CountPosting("purchase", err) }()

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", httpx.ErrValidation)
	}
	if req.SupplierID <= 0 {
		return nil, fmt.Errorf("%w: supplier is required", httpx.ErrValidation)
	}
	if req.PaymentType == "" {
		req.PaymentType = PaymentCash
	}
	if req.PaymentType != PaymentCash && req.PaymentType != PaymentCredit {
		return nil, fmt.Errorf("%w: unknown payment type %q", httpx.ErrValidation, req.PaymentType)
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount percent out of range", httpx.ErrValidation)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertInvoice(ctx, Invoice{
			SupplierID:  req.SupplierID,
			PaymentType: req.PaymentType,
			Status:      StatusCompleted,
			Notes:       req.Notes,
			CreatedBy:   userID,
		})
		if err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		number := fmt.Sprintf("P%06d", id)
		if err := tx.SetNumber(ctx, id, number); err != nil {
			return fmt.Errorf("set invoice number: %w", err)
		}

		var total float64
		for _, line := range req.Items {
			if err := tx.AdjustProductStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("product %d: %w", line.ProductID, err)
			}
			lineTotal := line.Quantity * line.UnitPrice
			if err := tx.InsertItem(ctx, InvoiceItem{
				InvoiceID:  id,
				ProductID:  line.ProductID,
				Color:      line.Color,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: lineTotal,
			}); err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
			if err := tx.InsertMovement(ctx, line.ProductID, line.Quantity, id, userID); err != nil {
				return fmt.Errorf("insert movement: %w", err)
			}
			total += lineTotal
		}

		discount := total * req.DiscountPercent / 100
		final := total - discount
		if err := tx.SetTotals(ctx, id, total, discount, final); err != nil {
			return fmt.Errorf("set totals: %w", err)
		}

		if req.PaymentType == PaymentCredit {
			if err := tx.AdjustSupplierBalance(ctx, req.SupplierID, final); err != nil {
				return fmt.Errorf("supplier %d: %w", req.SupplierID, err)
			}
		}

		result = &PostResult{
			InvoiceID:     id,
			InvoiceNumber: number,
			TotalAmount:   total,
			Discount:      discount,
			FinalAmount:   final,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
