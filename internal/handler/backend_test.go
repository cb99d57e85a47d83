package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pawmart-web/internal/appointment"
	"pawmart-web/internal/cart"
	"pawmart-web/internal/order"
	"pawmart-web/internal/payment"
	"pawmart-web/internal/product"
	"pawmart-web/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// fakeBackend is an in-memory storefront API speaking the success/message/data envelope.
type fakeBackend struct {
	mu sync.Mutex

	user         user.SessionUser
	profile      user.Profile
	products     map[string]*product.Product
	cart         []cart.Item
	nextItem     int
	selection    *order.DirectBuySelection
	orders       []order.PlaceOrderRequest
	orderRoutes  []string
	appointments []appointment.Appointment
	releases     []appointment.TimeSlot
	calls        []string

	failPlaceOrder  bool
	failSlotRelease bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		user:     user.SessionUser{ID: "u1", Name: "Jane Doe", Email: "jane@example.com", Role: user.RoleUser},
		profile:  user.Profile{ID: "u1", Name: "Jane Doe", Address: "1 Main St", Phone: "5551234567"},
		products: map[string]*product.Product{},
	}
}

func (b *fakeBackend) addProduct(p *product.Product) {
	b.products[p.ID] = p
}

func (b *fakeBackend) ok(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func (b *fakeBackend) fail(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

func (b *fakeBackend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.calls = append(b.calls, req.Method+" "+req.URL.Path)
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/users/session", func(w http.ResponseWriter, req *http.Request) {
		b.ok(w, b.user)
	})
	r.Get("/api/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.ok(w, b.profile)
	})
	r.Put("/api/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		var params user.UpdateProfileParams
		_ = json.NewDecoder(req.Body).Decode(&params)
		b.mu.Lock()
		defer b.mu.Unlock()
		if params.DeliveryDetails != nil {
			b.profile.DeliveryDetails = params.DeliveryDetails
		}
		b.ok(w, b.profile)
	})

	r.Get("/api/cart", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.ok(w, cart.Cart{Items: append([]cart.Item{}, b.cart...)})
	})
	r.Post("/api/cart/add", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.products[body.ProductID]
		if !ok {
			b.fail(w, http.StatusNotFound, "Product not found")
			return
		}
		for i := range b.cart {
			if b.cart[i].Product.ID == p.ID {
				b.cart[i].Quantity += body.Quantity
				b.ok(w, nil)
				return
			}
		}
		b.nextItem++
		b.cart = append(b.cart, cart.Item{ID: "item-" + strconv.Itoa(b.nextItem), Product: p, Quantity: body.Quantity})
		b.ok(w, nil)
	})
	r.Put("/api/cart/update/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.cart {
			if b.cart[i].ID == chi.URLParam(req, "id") {
				b.cart[i].Quantity = body.Quantity
				b.ok(w, nil)
				return
			}
		}
		b.fail(w, http.StatusNotFound, "Cart item not found")
	})
	r.Delete("/api/cart/remove/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.cart {
			if b.cart[i].ID == chi.URLParam(req, "id") {
				b.cart = append(b.cart[:i], b.cart[i+1:]...)
				break
			}
		}
		b.ok(w, nil)
	})
	r.Delete("/api/cart/clear", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.cart = nil
		b.ok(w, nil)
	})

	placeOrder := func(route string) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			var body order.PlaceOrderRequest
			_ = json.NewDecoder(req.Body).Decode(&body)
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.failPlaceOrder {
				b.fail(w, http.StatusServiceUnavailable, "Order service unavailable")
				return
			}
			b.orders = append(b.orders, body)
			b.orderRoutes = append(b.orderRoutes, route)
			b.ok(w, order.Order{
				ID:              "order-" + strconv.Itoa(len(b.orders)),
				Items:           body.Items,
				TotalAmount:     body.TotalAmount,
				PaymentMethod:   body.PaymentMethod,
				PaymentStatus:   body.PaymentStatus,
				Status:          body.Status,
				DeliveryDetails: body.DeliveryDetails,
				CreatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			})
		}
	}
	r.Post("/api/orders/place-order", placeOrder("place-order"))
	r.Post("/api/orders/process-direct-buy", placeOrder("process-direct-buy"))
	r.Post("/api/orders/direct-buy", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.selection = &order.DirectBuySelection{Product: b.products[body.ProductID], Quantity: body.Quantity}
		b.ok(w, nil)
	})
	r.Get("/api/orders/direct-buy-data", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.selection == nil {
			b.fail(w, http.StatusNotFound, "No direct buy data")
			return
		}
		b.ok(w, b.selection)
	})

	r.Get("/appointments/", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.ok(w, b.appointments)
	})
	r.Get("/appointments/user/{userID}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var mine []appointment.Appointment
		for _, a := range b.appointments {
			if a.UserID == chi.URLParam(req, "userID") {
				mine = append(mine, a)
			}
		}
		b.ok(w, mine)
	})
	r.Post("/appointments/", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			UserID      string                  `json:"userId"`
			PetName     string                  `json:"petName"`
			OwnerName   string                  `json:"ownerName"`
			ServiceType appointment.ServiceType `json:"serviceType"`
			Date        string                  `json:"date"`
			Time        string                  `json:"time"`
			Details     json.RawMessage         `json:"details"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		details, _ := appointment.DecodeDetails(body.ServiceType, body.Details)
		b.mu.Lock()
		defer b.mu.Unlock()
		a := appointment.Appointment{
			ID:          "appt-" + strconv.Itoa(len(b.appointments)+1),
			UserID:      body.UserID,
			PetName:     body.PetName,
			OwnerName:   body.OwnerName,
			ServiceType: body.ServiceType,
			Date:        body.Date,
			Time:        body.Time,
			Status:      appointment.StatusBooked,
			Details:     details,
		}
		b.appointments = append(b.appointments, a)
		b.ok(w, a)
	})
	setStatus := func(id string, s appointment.Status) bool {
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments[i].Status = s
				return true
			}
		}
		return false
	}
	r.Put("/appointments/cancel/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if !setStatus(chi.URLParam(req, "id"), appointment.StatusCancelled) {
			b.fail(w, http.StatusNotFound, "Appointment not found")
			return
		}
		b.ok(w, nil)
	})
	r.Put("/appointments/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Status appointment.Status `json:"status"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		if !setStatus(chi.URLParam(req, "id"), body.Status) {
			b.fail(w, http.StatusNotFound, "Appointment not found")
			return
		}
		b.ok(w, nil)
	})
	r.Post("/appointments/timeslots/delete", func(w http.ResponseWriter, req *http.Request) {
		var slot appointment.TimeSlot
		_ = json.NewDecoder(req.Body).Decode(&slot)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failSlotRelease {
			b.fail(w, http.StatusInternalServerError, "Slot store offline")
			return
		}
		b.releases = append(b.releases, slot)
		b.ok(w, nil)
	})

	return r
}

func (b *fakeBackend) callCount(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// memoryPayments is an in-memory payment.Repository.
type memoryPayments struct {
	mu   sync.Mutex
	rows map[uuid.UUID]payment.Handoff
}

func newMemoryPayments() *memoryPayments {
	return &memoryPayments{rows: map[uuid.UUID]payment.Handoff{}}
}

func (m *memoryPayments) Save(_ context.Context, h *payment.Handoff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[h.ID] = *h
	return nil
}

func (m *memoryPayments) Get(_ context.Context, id uuid.UUID) (*payment.Handoff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.rows[id]
	if !ok {
		return nil, payment.ErrHandoffNotFound
	}
	return &h, nil
}

func (m *memoryPayments) MarkCompleted(_ context.Context, id uuid.UUID, status payment.Status, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.rows[id]
	if !ok || h.Status != payment.StatusPending {
		return false, nil
	}
	h.Status = status
	h.CompletedAt = &at
	m.rows[id] = h
	return true, nil
}

func (b *fakeBackend) placed() ([]order.PlaceOrderRequest, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]order.PlaceOrderRequest(nil), b.orders...), append([]string(nil), b.orderRoutes...)
}

func (b *fakeBackend) cartLines() []cart.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]cart.Item(nil), b.cart...)
}

func (b *fakeBackend) slotReleases() []appointment.TimeSlot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]appointment.TimeSlot(nil), b.releases...)
}

func (b *fakeBackend) savedDelivery() *order.DeliveryDetails {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.DeliveryDetails
}

func (b *fakeBackend) setFailures(placeOrder, slotRelease bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPlaceOrder = placeOrder
	b.failSlotRelease = slotRelease
}
