package appointment

import (
	"context"
	"net/url"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/logger"

	"go.uber.org/zap"
)

// API is the backend's appointment surface. Appointment routes are not
// under the /api prefix.
type API interface {
	List(ctx context.Context) ([]Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Cancel(ctx context.Context, id string) error
	ReleaseSlot(ctx context.Context, slot TimeSlot) error
	Book(ctx context.Context, req BookingRequest) (*Appointment, error)
}

type remote struct {
	api *apiclient.Client
}

func NewRemote(api *apiclient.Client) API {
	return &remote{api: api}
}

func (r *remote) List(ctx context.Context) ([]Appointment, error) {
	var list []Appointment
	if err := r.api.Get(ctx, "/appointments/", &list); err != nil {
		return nil, err
	}
	return normalize(list), nil
}

func (r *remote) ListForUser(ctx context.Context, userID string) ([]Appointment, error) {
	var list []Appointment
	if err := r.api.Get(ctx, "/appointments/user/"+url.PathEscape(userID), &list); err != nil {
		return nil, err
	}
	return normalize(list), nil
}

// UpdateStatus is the staff-side status PATCH.
func (r *remote) UpdateStatus(ctx context.Context, id string, status Status) error {
	if id == "" {
		return ErrMissingAppointmentID
	}
	body := map[string]Status{"status": status}
	return r.api.Put(ctx, "/appointments/"+url.PathEscape(id), body, nil)
}

// Cancel is the customer-side cancellation.
func (r *remote) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingAppointmentID
	}
	return r.api.Put(ctx, "/appointments/cancel/"+url.PathEscape(id), nil, nil)
}

func (r *remote) ReleaseSlot(ctx context.Context, slot TimeSlot) error {
	return r.api.Post(ctx, "/appointments/timeslots/delete", slot, nil)
}

func (r *remote) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "appointment"),
		zap.String("method", "Book"),
		zap.String("service_type", string(req.ServiceType)),
	)

	var a Appointment
	if err := r.api.Post(ctx, "/appointments/", req, &a); err != nil {
		log.Warn("booking failed", zap.Error(err))
		return nil, err
	}

	log.Info("appointment booked", zap.String("appointment_id", a.ID))
	return &a, nil
}

func normalize(list []Appointment) []Appointment {
	if list == nil {
		return []Appointment{}
	}
	return list
}
