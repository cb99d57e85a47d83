package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookingRequest creates an appointment. Details must be the variant that
// belongs to ServiceType.
type BookingRequest struct {
	UserID      string      `json:"userId" validate:"required"`
	PetName     string      `json:"petName" validate:"required"`
	OwnerName   string      `json:"ownerName" validate:"required"`
	ServiceType ServiceType `json:"serviceType" validate:"required"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string      `json:"time" validate:"required,datetime=15:04"`
	Details     Details     `json:"details" validate:"-"`
}

var bookingRules = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request shape and that the details variant matches
// the service type.
func (r BookingRequest) Validate() error {
	if !r.ServiceType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownServiceType, r.ServiceType)
	}
	if err := bookingRules.Struct(r); err != nil {
		return describe(err)
	}
	if r.Details == nil || r.Details.ServiceType() != r.ServiceType {
		return fmt.Errorf("%w: %s", ErrDetailsMismatch, r.ServiceType)
	}
	if err := bookingRules.Struct(r.Details); err != nil {
		return describe(err)
	}
	return nil
}

func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidBooking, strings.Join(parts, ", "))
}

// Book validates req locally before sending it.
func Book(ctx context.Context, api API, req BookingRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return api.Book(ctx, req)
}
