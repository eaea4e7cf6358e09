package sales

import (
	"context"
	"fmt"

	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service posts and reads sales invoices.
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

// Post writes an invoice, its lines, stock decrements and movements in
// one transaction. A missing product fails the whole posting.
func (s *Service) Post(ctx context.Context, userID int64, req CreateInvoiceRequest) (result *PostResult, err error) {
	defer func() { s.metrics.CountPosting("sale", err) }()

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", httpx.ErrValidation)
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
		invoice := Invoice{PaymentType: req.PaymentType, Status: StatusCompleted, CustomerID: req.CustomerID, Notes: req.Notes, CreatedBy: userID}
		if req.CustomerName != nil {
			invoice.CustomerName = *req.CustomerName
		}
		id, err := tx.InsertInvoice(ctx, invoice)
		if err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		number := fmt.Sprintf("S%06d", id)
		if err := tx.SetNumber(ctx, id, number); err != nil {
			return fmt.Errorf("set invoice number: %w", err)
		}

		var total float64
		for _, line := range req.Items {
			if err := tx.AdjustProductStock(ctx, line.ProductID, -line.Quantity); err != nil {
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

		if req.PaymentType == PaymentCredit && req.CustomerID != nil {
			if err := tx.AdjustCustomerBalance(ctx, *req.CustomerID, final); err != nil {
				return fmt.Errorf("customer %d: %w", *req.CustomerID, err)
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
