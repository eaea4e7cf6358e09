package products

// CreateProductRequest carries fields for a new product.
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   *string `json:"description,omitempty"`
	Barcode       *string `json:"barcode,omitempty" validate:"omitempty,max=100"`
	CategoryID    *int64  `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	SalePrice     float64 `json:"sale_price"`
	PurchasePrice float64 `json:"purchase_price"`
	StockQuantity float64 `json:"stock_quantity"`
	MinStock      float64 `json:"min_stock"`
	Unit          string  `json:"unit" validate:"omitempty,max=50"`
}

// UpdateProductRequest carries optional field updates.
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description   *string  `json:"description,omitempty"`
	Barcode       *string  `json:"barcode,omitempty" validate:"omitempty,max=100"`
	CategoryID    *int64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	StockQuantity *float64 `json:"stock_quantity,omitempty"`
	MinStock      *float64 `json:"min_stock,omitempty"`
	Unit          *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
}

// ListProductsRequest filters the product listing.
type ListProductsRequest struct {
	Search     string
	CategoryID int64
	Limit      int
	Offset     int
}

// ProductView is the list/detail representation with derived fields.
type ProductView struct {
	Product
	IsLowStock bool `json:"is_low_stock"`
}

// NewProductView wraps a product with its derived fields.
func NewProductView(p Product) ProductView {
	return ProductView{Product: p, IsLowStock: p.IsLowStock()}
}
