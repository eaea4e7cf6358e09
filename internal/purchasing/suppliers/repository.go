package suppliers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Repository defines persistence operations for suppliers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error)
	Create(ctx context.Context, supplier Supplier) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectSupplier = `
	SELECT id, name, phone, address, balance, created_at
	FROM suppliers
`

func (r *repository) Get(ctx context.Context, id int64) (*Supplier, error) {
	row := r.pool.QueryRow(ctx, selectSupplier+" WHERE id = $1", id)
	return scanSupplier(row)
}

func (r *repository) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM suppliers"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectSupplier + where + fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *s)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO suppliers (name, phone, address, balance)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		supplier.Name, supplier.Phone, supplier.Address, supplier.Balance,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE suppliers SET id = id"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "phone", "address"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.Balance, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
