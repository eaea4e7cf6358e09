package preparation

import "time"

// List statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// List is an order picking list prepared for a customer.
type List struct {
	ID           int64      `json:"id"`
	ListNumber   string     `json:"list_number"`
	CustomerName string     `json:"customer_name"`
	Status       string     `json:"status"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedBy    int64      `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Item is one product line on a preparation list.
type Item struct {
	ID          int64   `json:"id"`
	ListID      int64   `json:"-"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    float64 `json:"quantity"`
	Prepared    bool    `json:"prepared"`
}

// ListDetail bundles a list with its items.
type ListDetail struct {
	List
	Items []Item `json:"items"`
}

// ItemRequest is one requested list line.
type ItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required"`
}

// CreateListRequest carries a new preparation list.
type CreateListRequest struct {
	CustomerName string        `json:"customer_name" validate:"required,max=150"`
	Items        []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest moves a list between statuses.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// ListListsRequest filters the listing.
type ListListsRequest struct {
	Status string
	Limit  int
	Offset int
}
