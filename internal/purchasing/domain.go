package purchasing

import "time"

// Payment types accepted on purchase invoices.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// StatusCompleted is the status stamped on freshly posted invoices.
const StatusCompleted = "completed"

// Invoice is a posted purchase document.
type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	SupplierID    int64     `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	TotalAmount   float64   `json:"total_amount"`
	Discount      float64   `json:"discount"`
	FinalAmount   float64   `json:"final_amount"`
	PaymentType   string    `json:"payment_type"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	ItemsCount    int       `json:"items_count"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// InvoiceItem is one product line on a purchase invoice.
type InvoiceItem struct {
	ID          int64   `json:"id"`
	InvoiceID   int64   `json:"-"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// InvoiceDetail bundles an invoice with its lines.
type InvoiceDetail struct {
	Invoice
	Items []InvoiceItem `json:"items"`
}

// LineRequest is one requested invoice line.
type LineRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Color     *string `json:"color,omitempty"`
	Quantity  float64 `json:"quantity" validate:"required"`
	UnitPrice float64 `json:"unit_price"`
}

// CreateInvoiceRequest carries a purchase posting. The counterparty is
// always a registered supplier.
type CreateInvoiceRequest struct {
	SupplierID      int64         `json:"supplier_id" validate:"required"`
	PaymentType     string        `json:"payment_type" validate:"omitempty,oneof=cash credit"`
	DiscountPercent float64       `json:"discount_percentage" validate:"gte=0,lte=100"`
	Notes           *string       `json:"notes,omitempty"`
	Items           []LineRequest `json:"items" validate:"required,min=1,dive"`
}

// PostResult reports the outcome of a posting.
type PostResult struct {
	InvoiceID     int64   `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	TotalAmount   float64 `json:"total_amount"`
	Discount      float64 `json:"discount"`
	FinalAmount   float64 `json:"final_amount"`
}

// ListInvoicesRequest filters the invoice listing.
type ListInvoicesRequest struct {
	Search string
	Limit  int
	Offset int
}
