package shared

import "errors"

var (
	// ErrNotFound indicates the referenced or targeted entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrUniqueConstraint indicates a name/code/username collision.
	ErrUniqueConstraint = errors.New("unique constraint violation")
	// ErrForeignKey indicates a missing referenced row.
	ErrForeignKey = errors.New("foreign key constraint violation")
	// ErrHasChildren indicates a delete was refused because dependent rows exist.
	ErrHasChildren = errors.New("entity has dependent rows")
	// ErrAlreadyExists indicates a duplicate relationship link.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates a malformed or incomplete input.
	ErrValidation = errors.New("validation failed")
)

// UserSafeMessage returns a message suitable for API consumers. Storage
// internals are never surfaced.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "The requested record does not exist."
	case errors.Is(err, ErrUniqueConstraint):
		return "A record with that name or code already exists."
	case errors.Is(err, ErrForeignKey), errors.Is(err, ErrHasChildren):
		return "The record is still referenced by other data."
	case errors.Is(err, ErrAlreadyExists):
		return "That link already exists."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or PIN."
	case errors.Is(err, ErrValidation):
		return "The request is invalid."
	default:
		return "An unexpected error occurred."
	}
}
