package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validBooking() BookingRequest {
	return BookingRequest{
		UserID:      "u1",
		PetName:     "Rex",
		OwnerName:   "Sam",
		ServiceType: ServiceGrooming,
		Date:        "2025-03-01",
		Time:        "09:30",
		Details:     GroomingDetails{GroomingType: "Bath"},
	}
}

func TestBookingRequest_Validate(t *testing.T) {
	assert.NoError(t, validBooking().Validate())

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
		target error
	}{
		{"Unknown service", func(r *BookingRequest) { r.ServiceType = "Spa" }, ErrUnknownServiceType},
		{"Details of another service", func(r *BookingRequest) { r.Details = MedicalDetails{MedicalType: "Checkup"} }, ErrDetailsMismatch},
		{"Missing details", func(r *BookingRequest) { r.Details = nil }, ErrDetailsMismatch},
		{"Empty details field", func(r *BookingRequest) { r.Details = GroomingDetails{} }, ErrInvalidBooking},
		{"Bad date", func(r *BookingRequest) { r.Date = "01/03/2025" }, ErrInvalidBooking},
		{"Bad time", func(r *BookingRequest) { r.Time = "9am" }, ErrInvalidBooking},
		{"Missing pet", func(r *BookingRequest) { r.PetName = "" }, ErrInvalidBooking},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validBooking()
			tc.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tc.target)
		})
	}
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid request never reaches backend", func(t *testing.T) {
		api := new(MockAPI)
		r := validBooking()
		r.Time = ""
		_, err := Book(ctx, api, r)
		assert.ErrorIs(t, err, ErrInvalidBooking)
		api.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
	})

	t.Run("Valid request", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Book", ctx, validBooking()).Return(&Appointment{ID: "new", Status: StatusBooked}, nil)

		a, err := Book(ctx, api, validBooking())
		require.NoError(t, err)
		assert.Equal(t, "new", a.ID)
		assert.Equal(t, StatusBooked, a.Status)
	})
}
