package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the read-only aggregations behind the reports.
type Repository interface {
	SalesTotal(ctx context.Context, from, to time.Time) (float64, error)
	PurchasesTotal(ctx context.Context, from, to time.Time) (float64, error)
	ExpensesTotal(ctx context.Context, from, to time.Time) (float64, error)
	EntityCounts(ctx context.Context) (Counts, error)
	SalesSeries(ctx context.Context, from, to time.Time, monthly bool) ([]ChartPoint, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	CashFlow(ctx context.Context, from, to time.Time) ([]CashFlowPoint, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) SalesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(final_amount), 0) FROM sales_invoices WHERE created_at >= $1 AND created_at < $2",
		from, to,
	).Scan(&total)
	return total, err
}

func (r *repository) PurchasesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(final_amount), 0) FROM purchase_invoices WHERE created_at >= $1 AND created_at < $2",
		from, to,
	).Scan(&total)
	return total, err
}

func (r *repository) ExpensesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date >= $1 AND expense_date < $2",
		from, to,
	).Scan(&total)
	return total, err
}

func (r *repository) EntityCounts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM products),
		       (SELECT COUNT(*) FROM customers),
		       (SELECT COUNT(*) FROM suppliers),
		       (SELECT COUNT(*) FROM products WHERE stock_quantity <= min_stock)
	`).Scan(&c.Products, &c.Customers, &c.Suppliers, &c.LowStock)
	return c, err
}

func (r *repository) SalesSeries(ctx context.Context, from, to time.Time, monthly bool) ([]ChartPoint, error) {
	bucket := "day"
	format := "YYYY-MM-DD"
	if monthly {
		bucket = "month"
		format = "YYYY-MM"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc($1, created_at), $2), COALESCE(SUM(final_amount), 0)
		FROM sales_invoices
		WHERE created_at >= $3 AND created_at < $4
		GROUP BY 1
		ORDER BY 1
	`, bucket, format, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []ChartPoint{}
	for rows.Next() {
		var p ChartPoint
		if err := rows.Scan(&p.Label, &p.Total); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *repository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.product_id, COALESCE(p.name, ''), SUM(i.quantity), SUM(i.total_price)
		FROM sales_invoice_items i
		JOIN sales_invoices si ON si.id = i.invoice_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE si.created_at >= $1 AND si.created_at < $2
		GROUP BY i.product_id, p.name
		ORDER BY SUM(i.total_price) DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []TopProduct{}
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CashFlow reports daily cash movement: cash sales and receipts in,
// cash purchases, vouchers and expenses out.
func (r *repository) CashFlow(ctx context.Context, from, to time.Time) ([]CashFlowPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT day, COALESCE(SUM(money_in), 0), COALESCE(SUM(money_out), 0)
		FROM (
			SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, final_amount AS money_in, 0::numeric AS money_out
			FROM sales_invoices WHERE payment_type = 'cash' AND created_at >= $1 AND created_at < $2
			UNION ALL
			SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), amount, 0
			FROM payment_receipts WHERE created_at >= $1 AND created_at < $2
			UNION ALL
			SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), 0, final_amount
			FROM purchase_invoices WHERE payment_type = 'cash' AND created_at >= $1 AND created_at < $2
			UNION ALL
			SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), 0, amount
			FROM payment_vouchers WHERE created_at >= $1 AND created_at < $2
			UNION ALL
			SELECT to_char(date_trunc('day', expense_date), 'YYYY-MM-DD'), 0, amount
			FROM expenses WHERE expense_date >= $1 AND expense_date < $2
		) flows
		GROUP BY day
		ORDER BY day
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []CashFlowPoint{}
	for rows.Next() {
		var p CashFlowPoint
		if err := rows.Scan(&p.Day, &p.MoneyIn, &p.MoneyOut); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
