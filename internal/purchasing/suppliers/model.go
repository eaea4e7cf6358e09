package suppliers

import "time"

// Supplier is a registered vendor with a running balance.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest carries fields for a new supplier.
type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required,max=150"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateSupplierRequest carries optional field updates. Balance is absent:
// it only moves through invoice and voucher postings.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=150"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ListSuppliersRequest filters the supplier listing.
type ListSuppliersRequest struct {
	Search string
	Limit  int
	Offset int
}
