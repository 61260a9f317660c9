package discounts

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

// DiscountType selects how Value is interpreted.
type DiscountType string

const (
	// DiscountTypePercentage interprets Value as basis points.
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	// DiscountTypeFixed interprets Value as a fixed amount in cents.
	DiscountTypeFixed DiscountType = "FIXED"
)

// DiscountScope selects where the discount applies.
type DiscountScope string

const (
	DiscountScopeItem  DiscountScope = "ITEM"
	DiscountScopeOrder DiscountScope = "ORDER"
)

// Discount reduces a price either by a percentage or a fixed amount,
// optionally bounded to a validity window.
type Discount struct {
	ID        int64         `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Type      DiscountType  `json:"type" db:"discount_type"`
	Value     int64         `json:"value" db:"value"`
	Scope     DiscountScope `json:"scope" db:"scope"`
	IsActive  bool          `json:"is_active" db:"is_active"`
	StartsAt  *time.Time    `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt    *time.Time    `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateDiscountRequest is the input for creating a discount.
type CreateDiscountRequest struct {
	Name     string        `json:"name" validate:"required,max=120"`
	Type     DiscountType  `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	Value    int64         `json:"value" validate:"gt=0"`
	Scope    DiscountScope `json:"scope" validate:"required,oneof=ITEM ORDER"`
	StartsAt *time.Time    `json:"starts_at,omitempty"`
	EndsAt   *time.Time    `json:"ends_at,omitempty"`
}

// UpdateDiscountRequest applies a partial update. The validity window fields
// are tri-state: absent keeps the stored bound, null clears it.
type UpdateDiscountRequest struct {
	Name     *string                   `json:"name,omitempty" validate:"omitempty,max=120"`
	Type     *DiscountType             `json:"type,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	Value    *int64                    `json:"value,omitempty" validate:"omitempty,gt=0"`
	Scope    *DiscountScope            `json:"scope,omitempty" validate:"omitempty,oneof=ITEM ORDER"`
	IsActive *bool                     `json:"is_active,omitempty"`
	StartsAt types.Optional[time.Time] `json:"starts_at"`
	EndsAt   types.Optional[time.Time] `json:"ends_at"`
}
