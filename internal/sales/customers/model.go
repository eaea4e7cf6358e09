package customers

import "time"

// Customer types supported by the sales side.
const (
	TypeRegular = "regular"
	TypeAgent   = "agent"
)

// Customer is a registered buyer with a running balance.
type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CustomerType string    `json:"customer_type"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCustomerRequest carries fields for a new customer.
type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required,max=150"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	CustomerType string  `json:"customer_type" validate:"omitempty,oneof=regular agent"`
}

// UpdateCustomerRequest carries optional field updates. Balance is absent:
// it only moves through invoice and receipt postings.
type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=150"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	CustomerType *string `json:"customer_type,omitempty" validate:"omitempty,oneof=regular agent"`
}

// ListCustomersRequest filters the customer listing.
type ListCustomersRequest struct {
	Search string
	Limit  int
	Offset int
}
