package appointment

import "errors"

var (
	ErrMissingAppointmentID = errors.New("appointment id is required")
	ErrUnknownServiceType   = errors.New("unknown service type")
	ErrDetailsMismatch      = errors.New("details do not match service type")
	ErrNotConfirmable       = errors.New("appointment cannot be confirmed in its current status")
	ErrNotCancellable       = errors.New("completed appointments cannot be cancelled")
	ErrCancelDeclined       = errors.New("cancellation was not confirmed")
	ErrNotFound             = errors.New("appointment not found")
	ErrInvalidBooking       = errors.New("invalid booking")
)
