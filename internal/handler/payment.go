package handler

import (
	"net/http"

	"pawmart-web/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, errBadRequest, "Invalid payment reference")
		return
	}

	handoff, err := h.Payments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Payment not found")
		return
	}
	if handoff.UserID != mustSession(r).User.ID {
		writeError(w, r, payment.ErrForbidden, "Payment not found")
		return
	}
	writeOK(w, handoff, nil)
}

// CompletePayment is called by the browser when the external payment step
// returns. The status is self-reported by the client and is not verified
// with the payment provider; it only settles the hand-off record and, when
// PAID, clears the session cart for a cart order. Order payment status stays
// with the backend.
func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HandoffID uuid.UUID      `json:"handoffId"`
		Status    payment.Status `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}

	st := mustSession(r)
	res, err := h.Payments.Complete(r.Context(), req.HandoffID, st.User.ID, req.Status, st.Cart)
	if err != nil {
		writeError(w, r, err, "Failed to complete payment")
		return
	}
	writeOK(w, res, nil)
}
