package apiclient

import (
	"errors"
	"fmt"
)

var ErrNotSuccessful = errors.New("backend reported failure")

// APIError is returned for every failed backend call.
type APIError struct {
	Op         string
	StatusCode int
	// Message is the backend's own message, empty for transport failures.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage is the text safe to show in a notice.
func (e *APIError) UserMessage() string {
	return e.Message
}

// MessageOf extracts the backend message from err, or "" when there is none.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
