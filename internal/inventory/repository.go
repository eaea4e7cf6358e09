package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// TxRepository exposes the write operations of one adjustment transaction.
type TxRepository interface {
	AdjustProductStock(ctx context.Context, productID int64, delta float64) error
	InsertAdjustment(ctx context.Context, movement Movement) (int64, error)
}

// Repository defines persistence operations for inventory movements.
type Repository interface {
	ListMovements(ctx context.Context, req ListMovementsRequest) ([]Movement, int, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectMovement = `
	SELECT m.id, m.product_id, COALESCE(p.name, ''), m.movement_type, m.quantity,
	       m.reference_type, m.reference_id, m.notes, m.created_by, m.created_at
	FROM inventory_movements m
	LEFT JOIN products p ON p.id = m.product_id
`

func (r *repository) ListMovements(ctx context.Context, req ListMovementsRequest) ([]Movement, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.ProductID > 0 {
		where += fmt.Sprintf(" AND m.product_id = $%d", argPos)
		args = append(args, req.ProductID)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM inventory_movements m"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectMovement + where + fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.MovementType, &m.Quantity, &m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, m)
	}
	return result, total, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
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

func (t *txRepository) InsertAdjustment(ctx context.Context, movement Movement) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO inventory_movements (product_id, movement_type, quantity, notes, created_by)
		 VALUES ($1, 'adjustment', $2, $3, $4) RETURNING id`,
		movement.ProductID, movement.Quantity, movement.Notes, movement.CreatedBy,
	).Scan(&id)
	return id, err
}
