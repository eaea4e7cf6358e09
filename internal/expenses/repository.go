package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Repository defines persistence operations for expenses.
type Repository interface {
	Get(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error)
	Create(ctx context.Context, expense Expense) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectExpense = `
	SELECT id, description, amount, category, expense_date, created_by, created_at
	FROM expenses
`

func (r *repository) Get(ctx context.Context, id int64) (*Expense, error) {
	var e Expense
	err := r.pool.QueryRow(ctx, selectExpense+" WHERE id = $1", id).
		Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	where := " WHERE TRUE"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND (description ILIKE $%d OR category ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM expenses"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectExpense + where + fmt.Sprintf(" ORDER BY expense_date DESC, id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, expense Expense) (int64, error) {
	date := expense.ExpenseDate
	if date.IsZero() {
		date = time.Now()
	}
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO expenses (description, amount, category, expense_date, created_by)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		expense.Description, expense.Amount, expense.Category, date, expense.CreatedBy,
	).Scan(&id)
	return id, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
