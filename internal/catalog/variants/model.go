package variants

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

// VariantType is an axis items vary on, e.g. "Size" or "Color".
type VariantType struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VariantValue is a concrete point on a type's axis, e.g. "Large".
type VariantValue struct {
	ID           int64     `json:"id" db:"id"`
	TypeID       int64     `json:"type_id" db:"type_id"`
	Value        string    `json:"value" db:"value"`
	DisplayOrder int64     `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ItemVariant is a sellable variation of an item. Exactly one variant per
// item carries the default flag while the item has any variants at all.
type ItemVariant struct {
	ID              int64       `json:"id" db:"id"`
	ItemID          int64       `json:"item_id" db:"item_id"`
	SKU             string      `json:"sku" db:"sku"`
	PriceAdjustment types.Money `json:"price_adjustment" db:"price_adjustment"`
	IsDefault       bool        `json:"is_default" db:"is_default"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// VariantValueLink joins an item variant to a variant value.
type VariantValueLink struct {
	VariantID int64     `json:"variant_id" db:"variant_id"`
	ValueID   int64     `json:"value_id" db:"value_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateVariantTypeRequest is the input for creating a variant type.
type CreateVariantTypeRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// UpdateVariantTypeRequest applies a partial update.
type UpdateVariantTypeRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=120"`
}

// CreateVariantValueRequest is the input for creating a variant value.
// DisplayOrder defaults to one past the highest order within the type.
type CreateVariantValueRequest struct {
	TypeID       int64  `json:"type_id" validate:"required,gt=0"`
	Value        string `json:"value" validate:"required,max=120"`
	DisplayOrder *int64 `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

// UpdateVariantValueRequest applies a partial update.
type UpdateVariantValueRequest struct {
	Value        *string `json:"value,omitempty" validate:"omitempty,max=120"`
	DisplayOrder *int64  `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

// CreateItemVariantRequest is the input for creating an item variant. A nil
// IsDefault means "default iff this is the item's first variant". ValueIDs
// may seed the variant's value links; they are subject to the one value per
// type rule.
type CreateItemVariantRequest struct {
	ItemID          int64       `json:"item_id" validate:"required,gt=0"`
	SKU             string      `json:"sku" validate:"required,max=64"`
	PriceAdjustment types.Money `json:"price_adjustment"`
	IsDefault       *bool       `json:"is_default,omitempty"`
	ValueIDs        []int64     `json:"value_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// UpdateItemVariantRequest applies a partial update. The default flag can
// only be raised here; it is lowered implicitly when a sibling becomes the
// default.
type UpdateItemVariantRequest struct {
	SKU             *string      `json:"sku,omitempty" validate:"omitempty,max=64"`
	PriceAdjustment *types.Money `json:"price_adjustment,omitempty"`
	IsDefault       *bool        `json:"is_default,omitempty"`
}
