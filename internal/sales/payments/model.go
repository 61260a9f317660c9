package payments

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusVoided    PaymentStatus = "VOIDED"
)

// SalesOrderPayment records money taken against an order. Payments are born
// COMPLETED; voiding is one way.
type SalesOrderPayment struct {
	ID              int64         `json:"id" db:"id"`
	OrderID         int64         `json:"order_id" db:"order_id"`
	PaymentMethodID int64         `json:"payment_method_id" db:"payment_method_id"`
	Amount          types.Money   `json:"amount" db:"amount"`
	Reference       *string       `json:"reference,omitempty" db:"reference"`
	Status          PaymentStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

type CreatePaymentRequest struct {
	OrderID         int64       `json:"order_id" validate:"required,gt=0"`
	PaymentMethodID int64       `json:"payment_method_id" validate:"required,gt=0"`
	Amount          types.Money `json:"amount"`
	Reference       *string     `json:"reference,omitempty" validate:"omitempty,max=255"`
}

// UpdatePaymentRequest applies a partial update to a completed payment.
type UpdatePaymentRequest struct {
	PaymentMethodID *int64                 `json:"payment_method_id,omitempty" validate:"omitempty,gt=0"`
	Amount          *types.Money           `json:"amount,omitempty"`
	Reference       types.Optional[string] `json:"reference"`
}
