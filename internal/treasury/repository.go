package treasury

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// TxRepository exposes the write operations of one treasury transaction.
type TxRepository interface {
	InsertReceipt(ctx context.Context, receipt Receipt) (int64, error)
	SetReceiptNumber(ctx context.Context, id int64, number string) error
	InsertVoucher(ctx context.Context, voucher Voucher) (int64, error)
	SetVoucherNumber(ctx context.Context, id int64, number string) error
	AdjustCustomerBalance(ctx context.Context, customerID int64, delta float64) error
	AdjustSupplierBalance(ctx context.Context, supplierID int64, delta float64) error
}

// Repository defines persistence operations for receipts and vouchers.
type Repository interface {
	ListReceipts(ctx context.Context, req ListRequest) ([]Receipt, int, error)
	GetReceipt(ctx context.Context, id int64) (*Receipt, error)
	ListVouchers(ctx context.Context, req ListRequest) ([]Voucher, int, error)
	GetVoucher(ctx context.Context, id int64) (*Voucher, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectReceipt = `
	SELECT r.id, r.receipt_number, r.customer_id, COALESCE(c.name, ''),
	       r.amount, r.notes, r.created_by, r.created_at
	FROM payment_receipts r
	LEFT JOIN customers c ON c.id = r.customer_id
`

const selectVoucher = `
	SELECT v.id, v.voucher_number, v.supplier_id, COALESCE(s.name, ''),
	       v.amount, v.notes, v.created_by, v.created_at
	FROM payment_vouchers v
	LEFT JOIN suppliers s ON s.id = v.supplier_id
`

func (r *repository) ListReceipts(ctx context.Context, req ListRequest) ([]Receipt, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND (r.receipt_number ILIKE $%d OR c.name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM payment_receipts r LEFT JOIN customers c ON c.id = r.customer_id" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectReceipt + where + fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Receipt
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(&rec.ID, &rec.ReceiptNumber, &rec.CustomerID, &rec.CustomerName, &rec.Amount, &rec.Notes, &rec.CreatedBy, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, rec)
	}
	return result, total, rows.Err()
}

func (r *repository) GetReceipt(ctx context.Context, id int64) (*Receipt, error) {
	var rec Receipt
	err := r.pool.QueryRow(ctx, selectReceipt+" WHERE r.id = $1", id).
		Scan(&rec.ID, &rec.ReceiptNumber, &rec.CustomerID, &rec.CustomerName, &rec.Amount, &rec.Notes, &rec.CreatedBy, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListVouchers(ctx context.Context, req ListRequest) ([]Voucher, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND (v.voucher_number ILIKE $%d OR s.name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM payment_vouchers v LEFT JOIN suppliers s ON s.id = v.supplier_id" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectVoucher + where + fmt.Sprintf(" ORDER BY v.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Voucher
	for rows.Next() {
		var v Voucher
		if err := rows.Scan(&v.ID, &v.VoucherNumber, &v.SupplierID, &v.SupplierName, &v.Amount, &v.Notes, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, v)
	}
	return result, total, rows.Err()
}

func (r *repository) GetVoucher(ctx context.Context, id int64) (*Voucher, error) {
	var v Voucher
	err := r.pool.QueryRow(ctx, selectVoucher+" WHERE v.id = $1", id).
		Scan(&v.ID, &v.VoucherNumber, &v.SupplierID, &v.SupplierName, &v.Amount, &v.Notes, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (t *txRepository) InsertReceipt(ctx context.Context, receipt Receipt) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO payment_receipts (receipt_number, customer_id, amount, notes, created_by)
		 VALUES ('', $1, $2, $3, $4) RETURNING id`,
		receipt.CustomerID, receipt.Amount, receipt.Notes, receipt.CreatedBy,
	).Scan(&id)
	return id, err
}

func (t *txRepository) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	_, err := t.tx.Exec(ctx, "UPDATE payment_receipts SET receipt_number = $1 WHERE id = $2", number, id)
	return err
}

func (t *txRepository) InsertVoucher(ctx context.Context, voucher Voucher) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO payment_vouchers (voucher_number, supplier_id, amount, notes, created_by)
		 VALUES ('', $1, $2, $3, $4) RETURNING id`,
		voucher.SupplierID, voucher.Amount, voucher.Notes, voucher.CreatedBy,
	).Scan(&id)
	return id, err
}

func (t *txRepository) SetVoucherNumber(ctx context.Context, id int64, number string) error {
	_, err := t.tx.Exec(ctx, "UPDATE payment_vouchers SET voucher_number = $1 WHERE id = $2", number, id)
	return err
}

func (t *txRepository) AdjustCustomerBalance(ctx context.Context, customerID int64, delta float64) error {
	tag, err := t.tx.Exec(ctx, "UPDATE customers SET balance = balance + $1 WHERE id = $2", delta, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (t *txRepository) AdjustSupplierBalance(ctx context.Context, supplierID int64, delta float64) error {
	tag, err := t.tx.Exec(ctx, "UPDATE suppliers SET balance = balance + $1 WHERE id = $2", delta, supplierID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
