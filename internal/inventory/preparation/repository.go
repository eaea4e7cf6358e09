package preparation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/db"
	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// TxRepository exposes the write operations of one list creation.
type TxRepository interface {
	InsertList(ctx context.Context, list List) (int64, error)
	SetNumber(ctx context.Context, id int64, number string) error
	InsertItem(ctx context.Context, item Item) error
}

// Repository defines persistence operations for preparation lists.
type Repository interface {
	List(ctx context.Context, req ListListsRequest) ([]List, int, error)
	Get(ctx context.Context, id int64) (*ListDetail, error)
	SetStatus(ctx context.Context, id int64, status string, stampCompleted bool) error
	ToggleItem(ctx context.Context, listID, itemID int64) (bool, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectList = `
	SELECT id, list_number, customer_name, status, completed_at, created_by, created_at
	FROM preparation_lists
`

func (r *repository) List(ctx context.Context, req ListListsRequest) ([]List, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, req.Status)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM preparation_lists"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectList + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []List
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.ListNumber, &l.CustomerName, &l.Status, &l.CompletedAt, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, l)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*ListDetail, error) {
	var l List
	err := r.pool.QueryRow(ctx, selectList+" WHERE id = $1", id).
		Scan(&l.ID, &l.ListNumber, &l.CustomerName, &l.Status, &l.CompletedAt, &l.CreatedBy, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT i.id, i.list_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.prepared
		 FROM preparation_list_items i
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.list_id = $1
		 ORDER BY i.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := ListDetail{List: l, Items: []Item{}}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ListID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Prepared); err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, item)
	}
	return &detail, rows.Err()
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string, stampCompleted bool) error {
	query := "UPDATE preparation_lists SET status = $1, completed_at = NULL WHERE id = $2"
	if stampCompleted {
		query = "UPDATE preparation_lists SET status = $1, completed_at = NOW() WHERE id = $2"
	}
	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) ToggleItem(ctx context.Context, listID, itemID int64) (bool, error) {
	var prepared bool
	err := r.pool.QueryRow(ctx,
		"UPDATE preparation_list_items SET prepared = NOT prepared WHERE id = $1 AND list_id = $2 RETURNING prepared",
		itemID, listID,
	).Scan(&prepared)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, httpx.ErrNotFound
		}
		return false, err
	}
	return prepared, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (t *txRepository) InsertList(ctx context.Context, list List) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO preparation_lists (list_number, customer_name, status, created_by)
		 VALUES ('', $1, $2, $3) RETURNING id`,
		list.CustomerName, list.Status, list.CreatedBy,
	).Scan(&id)
	return id, err
}

func (t *txRepository) SetNumber(ctx context.Context, id int64, number string) error {
	_, err := t.tx.Exec(ctx, "UPDATE preparation_lists SET list_number = $1 WHERE id = $2", number, id)
	return err
}

func (t *txRepository) InsertItem(ctx context.Context, item Item) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO preparation_list_items (list_id, product_id, quantity, prepared)
		 VALUES ($1, $2, $3, $4)`,
		item.ListID, item.ProductID, item.Quantity, item.Prepared,
	)
	return err
}
