package inventory

import "time"

// Movement types recorded in the ledger.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// Movement is one recorded stock change.
type Movement struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	MovementType  string    `json:"movement_type"`
	Quantity      float64   `json:"quantity"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateAdjustmentRequest carries a manual stock correction. Quantity is
// a signed delta.
type CreateAdjustmentRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required"`
	Notes     *string `json:"notes,omitempty"`
}

// ListMovementsRequest filters the movement listing.
type ListMovementsRequest struct {
	ProductID int64
	Limit     int
	Offset    int
}
