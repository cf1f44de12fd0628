package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnauthorized      = errors.New("not allowed to perform this action")
	ErrConflict          = errors.New("dates conflict with an existing rental")
	ErrInvalidTransition = errors.New("invalid rental status transition")
	ErrFileRejected      = errors.New("file rejected")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrAlreadyInCart     = errors.New("camera is already in the cart")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
