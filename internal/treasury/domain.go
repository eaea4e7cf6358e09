package treasury

import "time"

// Receipt records money received from a customer.
type Receipt struct {
	ID            int64     `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	Amount        float64   `json:"amount"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Voucher records money paid out to a supplier.
type Voucher struct {
	ID            int64     `json:"id"`
	VoucherNumber string    `json:"voucher_number"`
	SupplierID    int64     `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	Amount        float64   `json:"amount"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateReceiptRequest carries a receipt posting.
type CreateReceiptRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

// CreateVoucherRequest carries a voucher posting.
type CreateVoucherRequest struct {
	SupplierID int64   `json:"supplier_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

// ListRequest filters receipt and voucher listings.
type ListRequest struct {
	Search string
	Limit  int
	Offset int
}
