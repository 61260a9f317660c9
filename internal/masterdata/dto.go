package masterdata

import "github.com/meridian-pos/meridian-pos/internal/types"

// CreateCustomerRequest is the input for creating a customer.
type CreateCustomerRequest struct {
	Name  string  `json:"name" validate:"required,max=160"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// UpdateCustomerRequest applies a partial update; email and phone are
// tri-state so they can be cleared to null.
type UpdateCustomerRequest struct {
	Name     *string                `json:"name,omitempty" validate:"omitempty,max=160"`
	Email    types.Optional[string] `json:"email"`
	Phone    types.Optional[string] `json:"phone"`
	IsActive *bool                  `json:"is_active,omitempty"`
}

// CreateSupplierRequest is the input for creating a supplier.
type CreateSupplierRequest struct {
	Name  string  `json:"name" validate:"required,max=160"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// UpdateSupplierRequest applies a partial update.
type UpdateSupplierRequest struct {
	Name     *string                `json:"name,omitempty" validate:"omitempty,max=160"`
	Email    types.Optional[string] `json:"email"`
	Phone    types.Optional[string] `json:"phone"`
	IsActive *bool                  `json:"is_active,omitempty"`
}

// CreateCostCenterRequest is the input for creating a cost center.
type CreateCostCenterRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=160"`
}

// UpdateCostCenterRequest applies a partial update.
type UpdateCostCenterRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=160"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CreatePaymentMethodRequest is the input for creating a payment method.
type CreatePaymentMethodRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=160"`
}

// UpdatePaymentMethodRequest applies a partial update.
type UpdatePaymentMethodRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=160"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CreateChannelRequest is the input for creating a channel.
type CreateChannelRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=160"`
}

// UpdateChannelRequest applies a partial update.
type UpdateChannelRequest struct {
	Code *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name *string `json:"name,omitempty" validate:"omitempty,max=160"`
}

// CreateLocationRequest is the input for creating a location.
type CreateLocationRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=160"`
}

// UpdateLocationRequest applies a partial update.
type UpdateLocationRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=160"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CreateBrandRequest is the input for creating a brand.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=160"`
}

// UpdateBrandRequest applies a partial update.
type UpdateBrandRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=160"`
	IsActive *bool   `json:"is_active,omitempty"`
}
