package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrDirectBuyUnavailable = errors.New("direct-buy selection unavailable")
	ErrNotMounted           = errors.New("checkout not mounted")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmitInProgress     = errors.New("order submission already in progress")
	ErrAlreadySubmitted     = errors.New("order already submitted for this checkout")
	ErrSubmissionFailed     = errors.New("order submission failed")
	ErrIncompleteDelivery   = errors.New("all delivery fields are required")
)

// RedirectError means checkout cannot continue and the UI should navigate to To.
type RedirectError struct {
	To  string
	Err error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %v", e.To, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}
