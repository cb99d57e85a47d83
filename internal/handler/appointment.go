package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"pawmart-web/internal/appointment"
	"pawmart-web/internal/utils"

	"github.com/go-chi/chi/v5"
)

func criteriaFrom(r *http.Request) appointment.Criteria {
	q := r.URL.Query()
	return appointment.Criteria{
		Status:      appointment.Status(q.Get("status")),
		ServiceType: appointment.ServiceType(q.Get("serviceType")),
		Search:      q.Get("search"),
	}
}

func isStaff(r *http.Request) bool {
	return utils.IsAdmin(utils.GetUserRoleFromContext(r.Context()))
}

// ListAppointments reloads the session's appointments (all of them for
// staff, the caller's own otherwise) unless ?cached=true, then applies the
// status, serviceType and search filters.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	st := mustSession(r)

	if r.URL.Query().Get("cached") != "true" {
		var (
			list []appointment.Appointment
			err  error
		)
		if isStaff(r) {
			list, err = h.Appointments.List(r.Context())
		} else {
			list, err = h.Appointments.ListForUser(r.Context(), st.User.ID)
		}
		if err != nil {
			writeError(w, r, err, "Failed to load appointments")
			return
		}
		st.Appointments.Replace(list)
	}

	writeOK(w, st.Appointments.Filter(criteriaFrom(r)), nil)
}

type bookingPayload struct {
	PetName     string                  `json:"petName"`
	OwnerName   string                  `json:"ownerName"`
	ServiceType appointment.ServiceType `json:"serviceType"`
	Date        string                  `json:"date"`
	Time        string                  `json:"time"`
	Details     json.RawMessage         `json:"details"`
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var p bookingPayload
	if err := decode(r, &p); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}

	details, err := appointment.DecodeDetails(p.ServiceType, p.Details)
	if err != nil {
		writeError(w, r, err, "Invalid appointment details")
		return
	}

	st := mustSession(r)
	owner := p.OwnerName
	if owner == "" {
		owner = st.User.Name
	}

	a, err := appointment.Book(r.Context(), h.Appointments, appointment.BookingRequest{
		UserID:      st.User.ID,
		PetName:     p.PetName,
		OwnerName:   owner,
		ServiceType: p.ServiceType,
		Date:        p.Date,
		Time:        p.Time,
		Details:     details,
	})
	if err != nil {
		writeError(w, r, err, "Failed to book appointment")
		return
	}

	st.Appointments.Replace(append(st.Appointments.All(), *a))
	writeOK(w, a, nil)
}

func (h *Handler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	st := mustSession(r)
	a, ok := st.Appointments.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, appointment.ErrNotFound, "Appointment not found")
		return
	}

	out, err := h.lifecycle(appointment.ActorStaff).Confirm(r.Context(), a, st.Appointments)
	if err != nil {
		writeError(w, r, err, "Failed to confirm appointment")
		return
	}
	writeOK(w, out, out.Notice)
}

// CancelAppointment needs {"confirmed": true}; the UI asks the user first.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}

	st := mustSession(r)
	a, ok := st.Appointments.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, appointment.ErrNotFound, "Appointment not found")
		return
	}

	actor := appointment.ActorCustomer
	if isStaff(r) {
		actor = appointment.ActorStaff
	}
	confirm := func(context.Context, appointment.Appointment) bool { return req.Confirmed }

	out, err := h.lifecycle(actor).Cancel(r.Context(), a, confirm, st.Appointments)
	if err != nil {
		writeError(w, r, err, "Failed to cancel appointment")
		return
	}
	writeOK(w, out, out.Notice)
}
