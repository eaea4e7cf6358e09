package expenses

import "time"

// Expense is a recorded operating cost.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    *string   `json:"category,omitempty"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExpenseRequest carries a new expense.
type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=250"`
	Amount      float64 `json:"amount" validate:"required"`
	Category    *string `json:"category,omitempty"`
	ExpenseDate *string `json:"expense_date,omitempty"`
}

// ListExpensesRequest filters the expense listing.
type ListExpensesRequest struct {
	Search string
	Limit  int
	Offset int
}
