package categories

import "time"

// Category groups items into a named, unique bucket.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryRequest is the input for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// UpdateCategoryRequest applies a partial update; nil fields keep their
// stored value.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	IsActive *bool   `json:"is_active,omitempty"`
}
