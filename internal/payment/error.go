package payment

import "errors"

var (
	ErrHandoffNotFound = errors.New("payment hand-off not found")
	ErrInvalidStatus   = errors.New("completion status must be PAID or FAILED")
	ErrMissingOrderRef = errors.New("order reference is required")
	ErrInvalidTotal    = errors.New("payment total must be positive")
	ErrForbidden       = errors.New("payment hand-off belongs to another user")
)
