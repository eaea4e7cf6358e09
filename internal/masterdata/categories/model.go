package categories

import "time"

// Category groups products.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCategoryRequest carries fields for a new category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategoryRequest carries optional field updates.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}
