package taxes

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

// Tax is a named percentage applied to item sales.
type Tax struct {
	ID        int64         `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Rate      types.Percent `json:"rate" db:"rate"`
	IsActive  bool          `json:"is_active" db:"is_active"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// TaxGroup bundles taxes applied together.
type TaxGroup struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaxGroupTax links a tax into a group.
type TaxGroupTax struct {
	GroupID   int64     `json:"group_id" db:"group_id"`
	TaxID     int64     `json:"tax_id" db:"tax_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateTaxRequest is the input for creating a tax.
type CreateTaxRequest struct {
	Name string        `json:"name" validate:"required,max=120"`
	Rate types.Percent `json:"rate" validate:"gte=0"`
}

// UpdateTaxRequest applies a partial update.
type UpdateTaxRequest struct {
	Name     *string        `json:"name,omitempty" validate:"omitempty,max=120"`
	Rate     *types.Percent `json:"rate,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool          `json:"is_active,omitempty"`
}

// CreateTaxGroupRequest is the input for creating a tax group.
type CreateTaxGroupRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// UpdateTaxGroupRequest applies a partial update.
type UpdateTaxGroupRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=120"`
}
