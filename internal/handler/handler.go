// Package handler exposes the storefront client operations as a JSON API
// for the browser UI.
package handler

import (
	"net/http"

	"pawmart-web/internal/appointment"
	"pawmart-web/internal/metrics"
	"pawmart-web/internal/middleware"
	"pawmart-web/internal/order"
	"pawmart-web/internal/payment"
	"pawmart-web/internal/session"
	"pawmart-web/internal/user"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Sessions     *session.Registry
	Orders       order.API
	Users        user.API
	Appointments appointment.API
	Payments     payment.Service
	Metrics      *metrics.Registry

	CatalogPath   string
	SecureCookies bool
}

type Handler struct {
	Deps
	appts *appointment.Lifecycle
}

func New(deps Deps) *Handler {
	if deps.CatalogPath == "" {
		deps.CatalogPath = "/products"
	}
	return &Handler{
		Deps:  deps,
		appts: appointment.NewLifecycle(deps.Appointments, appointment.ActorStaff),
	}
}

func (h *Handler) lifecycle(actor appointment.Actor) *appointment.Lifecycle {
	return h.appts.As(actor)
}

// RegisterRoutes mounts the API on r. Identity and session middleware must
// already be installed on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.OpenSession)
		r.Get("/session", h.CurrentSession)
		r.Delete("/session", h.CloseSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Put("/items/{itemID}", h.UpdateCartItem)
				r.Delete("/items/{itemID}", h.RemoveCartItem)
			})

			r.Post("/buy-now", h.BuyNow)

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", h.StartCheckout)
				r.Get("/", h.GetCheckout)
				r.Put("/delivery", h.SetDelivery)
				r.Post("/delivery/save", h.SaveDelivery)
				r.Put("/payment-method", h.SetPaymentMethod)
				r.Post("/validate", h.ValidateCheckout)
				r.Post("/submit", h.SubmitCheckout)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", h.ListAppointments)
				r.Post("/", h.BookAppointment)
				r.With(middleware.RequireAdmin).Post("/{id}/confirm", h.ConfirmAppointment)
				r.Post("/{id}/cancel", h.CancelAppointment)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/{id}", h.GetPayment)
				r.Post("/complete", h.CompletePayment)
			})
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok", "sessions": h.Sessions.Len()}
	if h.Metrics != nil {
		body["backendCalls"] = h.Metrics.Snapshot()
	}
	writeOK(w, body, nil)
}

func mustSession(r *http.Request) *session.State {
	st, _ := session.FromContext(r.Context())
	return st
}
