package items

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

// Item is a sellable product. Price is the base price; variants may carry
// adjustments on top of it.
type Item struct {
	ID         int64       `json:"id" db:"id"`
	CategoryID int64       `json:"category_id" db:"category_id"`
	BrandID    *int64      `json:"brand_id,omitempty" db:"brand_id"`
	Name       string      `json:"name" db:"name"`
	Price      types.Money `json:"price" db:"price"`
	IsActive   bool        `json:"is_active" db:"is_active"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// ItemTax links an item to a tax applied at sale time.
type ItemTax struct {
	ItemID    int64     `json:"item_id" db:"item_id"`
	TaxID     int64     `json:"tax_id" db:"tax_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ItemDiscount links an item to a discount.
type ItemDiscount struct {
	ItemID     int64     `json:"item_id" db:"item_id"`
	DiscountID int64     `json:"discount_id" db:"discount_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateItemRequest is the input for creating an item.
type CreateItemRequest struct {
	CategoryID int64       `json:"category_id" validate:"required,gt=0"`
	BrandID    *int64      `json:"brand_id,omitempty" validate:"omitempty,gt=0"`
	Name       string      `json:"name" validate:"required,max=160"`
	Price      types.Money `json:"price" validate:"gte=0"`
}

// UpdateItemRequest applies a partial update. BrandID uses the tri-state
// optional so callers can clear it to null.
type UpdateItemRequest struct {
	CategoryID *int64                `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	BrandID    types.Optional[int64] `json:"brand_id"`
	Name       *string               `json:"name,omitempty" validate:"omitempty,max=160"`
	Price      *types.Money          `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool                 `json:"is_active,omitempty"`
}

// ListItemsFilter narrows item listings.
type ListItemsFilter struct {
	CategoryID *int64
	Search     string
}
