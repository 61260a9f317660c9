package users

import "time"

// User is an operator of the point of sale. The PIN is stored as a bcrypt
// hash and never leaves the package.
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	PinHash     string     `json:"-" db:"pin_hash"`
	FullName    string     `json:"full_name" db:"full_name"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Pin      string `json:"pin" validate:"required,min=4,max=32"`
	FullName string `json:"full_name" validate:"required,max=255"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Pin      *string `json:"pin,omitempty" validate:"omitempty,min=4,max=32"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}
