package products

import "time"

// Product is a sellable item. Stock lives on the product row and is only
// mutated by document postings and manual adjustments.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Barcode       *string   `json:"barcode,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	CategoryName  *string   `json:"category_name,omitempty"`
	SalePrice     float64   `json:"sale_price"`
	PurchasePrice float64   `json:"purchase_price"`
	StockQuantity float64   `json:"stock_quantity"`
	MinStock      float64   `json:"min_stock"`
	Unit          string    `json:"unit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsLowStock reports whether the product sits at or under its minimum.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStock
}
