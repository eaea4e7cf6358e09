package purchasing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// TxRepository exposes the write operations of one posting transaction.
type TxRepository interface {
	InsertInvoice(ctx context.Context, invoice Invoice) (int64, error)
	SetNumber(ctx context.Context, id int64, number string) error
	InsertItem(ctx context.Context, item InvoiceItem) error
	AdjustProductStock(ctx context.Context, productID int64, delta float64) error
	InsertMovement(ctx context.Context, productID int64, quantity float64, invoiceID, userID int64) error
	SetTotals(ctx context.Context, id int64, total, discount, final float64) error
	AdjustSupplierBalance(ctx context.Context, supplierID int64, delta float64) error
}

// Repository defines persistence operations for purchase invoices.
type Repository interface {
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (*InvoiceDetail, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectInvoice = `
	SELECT pi.id, pi.invoice_number, pi.supplier_id, COALESCE(s.name, ''),
	       pi.total_amount, pi.discount, pi.final_amount, pi.payment_type,
	       pi.status, pi.notes,
	       (SELECT COUNT(*) FROM purchase_invoice_items it WHERE it.invoice_id = pi.id),
	       pi.created_by, pi.created_at
	FROM purchase_invoices pi
	LEFT JOIN suppliers s ON s.id = pi.supplier_id
`

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND (pi.invoice_number ILIKE $%d OR s.name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM purchase_invoices pi LEFT JOIN suppliers s ON s.id = pi.supplier_id" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectInvoice + where + fmt.Sprintf(" ORDER BY pi.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *inv)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*InvoiceDetail, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, selectInvoice+" WHERE pi.id = $1", id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT i.id, i.invoice_id, i.product_id, COALESCE(p.name, ''), i.color, i.quantity, i.unit_price, i.total_price
		 FROM purchase_invoice_items i
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.invoice_id = $1
		 ORDER BY i.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := InvoiceDetail{Invoice: *inv, Items: []InvoiceItem{}}
	for rows.Next() {
		var item InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.ProductName, &item.Color, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, item)
	}
	return &detail, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (t *txRepository) InsertInvoice(ctx context.Context, invoice Invoice) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO purchase_invoices (invoice_number, supplier_id, total_amount, discount, final_amount, payment_type, status, notes, created_by)
		 VALUES ('', $1, 0, 0, 0, $2, $3, $4, $5) RETURNING id`,
		invoice.SupplierID, invoice.PaymentType, invoice.Status, invoice.Notes, invoice.CreatedBy,
	).Scan(&id)
	return id, err
}

func (t *txRepository) SetNumber(ctx context.Context, id int64, number string) error {
	_, err := t.tx.Exec(ctx, "UPDATE purchase_invoices SET invoice_number = $1 WHERE id = $2", number, id)
	return err
}

func (t *txRepository) InsertItem(ctx context.Context, item InvoiceItem) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO purchase_invoice_items (invoice_id, product_id, color, quantity, unit_price, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.InvoiceID, item.ProductID, item.Color, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	return err
}

func (t *txRepository) AdjustProductStock(ctx context.Context, productID int64, delta float64) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE products SET stock_quantity = stock_quantity + $1, updated_at = NOW() WHERE id = $2",
		delta, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (t *txRepository) InsertMovement(ctx context.Context, productID int64, quantity float64, invoiceID, userID int64) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO inventory_movements (product_id, movement_type, quantity, reference_type, reference_id, created_by)
		 VALUES ($1, 'in', $2, 'purchase', $3, $4)`,
		productID, quantity, invoiceID, userID,
	)
	return err
}

func (t *txRepository) SetTotals(ctx context.Context, id int64, total, discount, final float64) error {
	_, err := t.tx.Exec(ctx,
		"UPDATE purchase_invoices SET total_amount = $1, discount = $2, final_amount = $3 WHERE id = $4",
		total, discount, final, id,
	)
	return err
}

func (t *txRepository) AdjustSupplierBalance(ctx context.Context, supplierID int64, delta float64) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE suppliers SET balance = balance + $1 WHERE id = $2",
		delta, supplierID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.SupplierID, &inv.SupplierName,
		&inv.TotalAmount, &inv.Discount, &inv.FinalAmount, &inv.PaymentType,
		&inv.Status, &inv.Notes, &inv.ItemsCount, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}
