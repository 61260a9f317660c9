package orders

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusVoided  PaymentStatus = "VOIDED"
)

// SalesOrder is a finalized sale. Orders are born COMPLETED with payment
// PENDING; the only further transition is the void.
type SalesOrder struct {
	ID            int64         `json:"id" db:"id"`
	DocNumber     string        `json:"doc_number" db:"doc_number"`
	CustomerID    *int64        `json:"customer_id,omitempty" db:"customer_id"`
	ChannelID     *int64        `json:"channel_id,omitempty" db:"channel_id"`
	LocationID    *int64        `json:"location_id,omitempty" db:"location_id"`
	CostCenterID  *int64        `json:"cost_center_id,omitempty" db:"cost_center_id"`
	Subtotal      types.Money   `json:"subtotal" db:"subtotal"`
	DiscountTotal types.Money   `json:"discount_total" db:"discount_total"`
	TaxTotal      types.Money   `json:"tax_total" db:"tax_total"`
	ChargeTotal   types.Money   `json:"charge_total" db:"charge_total"`
	Total         types.Money   `json:"total" db:"total"`
	OrderStatus   OrderStatus   `json:"order_status" db:"order_status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedBy     int64         `json:"created_by" db:"created_by"`
	UpdatedBy     int64         `json:"updated_by" db:"updated_by"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// SalesOrderItem is one sold line. The money fields are computed at order
// creation and never recomputed afterwards.
type SalesOrderItem struct {
	ID              int64       `json:"id" db:"id"`
	OrderID         int64       `json:"order_id" db:"order_id"`
	ItemID          int64       `json:"item_id" db:"item_id"`
	VariantID       *int64      `json:"variant_id,omitempty" db:"variant_id"`
	Name            string      `json:"name" db:"name"`
	Quantity        int64       `json:"quantity" db:"quantity"`
	UnitPrice       types.Money `json:"unit_price" db:"unit_price"`
	DiscountPercent types.Percent `json:"discount_percent" db:"discount_percent"`
	TaxPercent      types.Percent `json:"tax_percent" db:"tax_percent"`
	DiscountAmount  types.Money `json:"discount_amount" db:"discount_amount"`
	TaxAmount       types.Money `json:"tax_amount" db:"tax_amount"`
	Subtotal        types.Money `json:"subtotal" db:"subtotal"`
	Total           types.Money `json:"total" db:"total"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// SalesOrderCharge is a flat extra amount on an order, e.g. a delivery fee.
type SalesOrderCharge struct {
	ID        int64       `json:"id" db:"id"`
	OrderID   int64       `json:"order_id" db:"order_id"`
	Name      string      `json:"name" db:"name"`
	Amount    types.Money `json:"amount" db:"amount"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// OrderDetail is an order with its lines and charges.
type OrderDetail struct {
	SalesOrder
	Items   []SalesOrderItem   `json:"items"`
	Charges []SalesOrderCharge `json:"charges"`
}

type CreateOrderItemRequest struct {
	ItemID          int64         `json:"item_id" validate:"required,gt=0"`
	VariantID       *int64        `json:"variant_id,omitempty" validate:"omitempty,gt=0"`
	Name            string        `json:"name" validate:"required,max=255"`
	Quantity        int64         `json:"quantity" validate:"required,gt=0"`
	UnitPrice       types.Money   `json:"unit_price"`
	DiscountPercent types.Percent `json:"discount_percent"`
	TaxPercent      types.Percent `json:"tax_percent"`
}

type CreateOrderChargeRequest struct {
	Name   string      `json:"name" validate:"required,max=255"`
	Amount types.Money `json:"amount"`
}

type CreateOrderRequest struct {
	CustomerID   *int64                     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	ChannelID    *int64                     `json:"channel_id,omitempty" validate:"omitempty,gt=0"`
	LocationID   *int64                     `json:"location_id,omitempty" validate:"omitempty,gt=0"`
	CostCenterID *int64                     `json:"cost_center_id,omitempty" validate:"omitempty,gt=0"`
	Items        []CreateOrderItemRequest   `json:"items" validate:"required,min=1,dive"`
	Charges      []CreateOrderChargeRequest `json:"charges,omitempty" validate:"omitempty,dive"`
}

// ListOrdersFilter narrows the order listing.
type ListOrdersFilter struct {
	CustomerID  *int64
	ChannelID   *int64
	OrderStatus OrderStatus
	From        *time.Time
	To          *time.Time
}
