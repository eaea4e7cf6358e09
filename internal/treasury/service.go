package treasury

import (
	"context"
	"fmt"

	"github.com/dukkan-erp/dukkan/internal/observability"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service posts and reads payment receipts and vouchers.
type Service struct {
	repo    Repository
	metrics *observability.Metrics
}

// NewService builds Service instance.
func NewService(repo Repository, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// ListReceipts returns a filtered page of receipts.
func (s *Service) ListReceipts(ctx context.Context, req ListRequest) ([]Receipt, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.ListReceipts(ctx, req)
}

// GetReceipt returns one receipt.
func (s *Service) GetReceipt(ctx context.Context, id int64) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

// ListVouchers returns a filtered page of vouchers.
func (s *Service) ListVouchers(ctx context.Context, req ListRequest) ([]Voucher, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	return s.repo.ListVouchers(ctx, req)
}

// GetVoucher returns one voucher.
func (s *Service) GetVoucher(ctx context.Context, id int64) (*Voucher, error) {
	return s.repo.GetVoucher(ctx, id)
}

// PostReceipt records money in from a customer and reduces what the
// customer owes.
func (s *Service) PostReceipt(ctx context.Context, userID int64, req CreateReceiptRequest) (receipt *Receipt, err error) {
	defer func() { s.metrics.CountPosting("receipt", err) }()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customer is required", httpx.ErrValidation)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.AdjustCustomerBalance(ctx, req.CustomerID, -req.Amount); err != nil {
			return fmt.Errorf("customer %d: %w", req.CustomerID, err)
		}
		id, err := tx.InsertReceipt(ctx, Receipt{
			CustomerID: req.CustomerID,
			Amount:     req.Amount,
			Notes:      req.Notes,
			CreatedBy:  userID,
		})
		if err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}
		number := fmt.Sprintf("R%06d", id)
		if err := tx.SetReceiptNumber(ctx, id, number); err != nil {
			return fmt.Errorf("set receipt number: %w", err)
		}
		receipt = &Receipt{
			ID:            id,
			ReceiptNumber: number,
			CustomerID:    req.CustomerID,
			Amount:        req.Amount,
			Notes:         req.Notes,
			CreatedBy:     userID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// PostVoucher records money out to a supplier and reduces what the
// business owes.
func (s *Service) PostVoucher(ctx context.Context, userID int64, req CreateVoucherRequest) (voucher *Voucher, err error) {
	defer func() { s.metrics.CountPosting("voucher", err) }()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}
	if req.SupplierID <= 0 {
		return nil, fmt.Errorf("%w: supplier is required", httpx.ErrValidation)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.AdjustSupplierBalance(ctx, req.SupplierID, -req.Amount); err != nil {
			return fmt.Errorf("supplier %d: %w", req.SupplierID, err)
		}
		id, err := tx.InsertVoucher(ctx, Voucher{
			SupplierID: req.SupplierID,
			Amount:     req.Amount,
			Notes:      req.Notes,
			CreatedBy:  userID,
		})
		if err != nil {
			return fmt.Errorf("insert voucher: %w", err)
		}
		number := fmt.Sprintf("V%06d", id)
		if err := tx.SetVoucherNumber(ctx, id, number); err != nil {
			return fmt.Errorf("set voucher number: %w", err)
		}
		voucher = &Voucher{
			ID:            id,
			VoucherNumber: number,
			SupplierID:    req.SupplierID,
			Amount:        req.Amount,
			Notes:         req.Notes,
			CreatedBy:     userID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}
