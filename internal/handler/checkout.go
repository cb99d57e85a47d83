package handler

import (
	"net/http"
	"strconv"

	"pawmart-web/internal/cart"
	"pawmart-web/internal/checkout"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/notice"
	"pawmart-web/internal/order"
	"pawmart-web/internal/payment"
	"pawmart-web/internal/session"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type checkoutView struct {
	Mode          checkout.Mode             `json:"mode"`
	Items         []cart.Item               `json:"items,omitempty"`
	Selection     *order.DirectBuySelection `json:"selection,omitempty"`
	Total         decimal.Decimal           `json:"total"`
	Delivery      order.DeliveryDetails     `json:"delivery"`
	PaymentMethod order.PaymentMethod       `json:"paymentMethod"`
}

func (h *Handler) checkoutViewOf(st *session.State, o *checkout.Orchestrator) checkoutView {
	v := checkoutView{
		Mode:          o.Mode(),
		Total:         o.Total(),
		Delivery:      o.Delivery(),
		PaymentMethod: o.PaymentMethod(),
	}
	if o.Mode() == checkout.ModeDirect {
		v.Selection = o.Selection()
	} else {
		v.Items = st.Cart.Snapshot().Items
	}
	return v
}

func currentCheckout(r *http.Request) (*session.State, *checkout.Orchestrator, error) {
	st := mustSession(r)
	o := st.Checkout()
	if o == nil {
		return st, nil, errNoCheckout
	}
	return st, o, nil
}

// BuyNow parks a single product as the direct-buy selection. The UI then
// starts a direct checkout.
func (h *Handler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}
	if err := h.Orders.BuyNow(r.Context(), req.ProductID, req.Quantity); err != nil {
		writeError(w, r, err, "Could not start buy now")
		return
	}
	writeOK(w, map[string]string{"redirect": "/checkout?direct=true"}, nil)
}

// StartCheckout mounts a fresh checkout. ?direct=true selects direct-buy mode.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	direct, _ := strconv.ParseBool(r.URL.Query().Get("direct"))
	st := mustSession(r)

	o := checkout.New(checkout.ModeFromDirectFlag(direct), st.User.ID, checkout.Deps{
		Cart:        st.Cart,
		Orders:      h.Orders,
		Users:       h.Users,
		CatalogPath: h.CatalogPath,
	})
	if err := o.Mount(r.Context()); err != nil {
		writeError(w, r, err, "Could not load checkout")
		return
	}

	st.SetCheckout(o)
	writeOK(w, h.checkoutViewOf(st, o), nil)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	st, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}
	writeOK(w, h.checkoutViewOf(st, o), nil)
}

func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	st, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}
	var d order.DeliveryDetails
	if err := decode(r, &d); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}
	o.SetDelivery(d)
	writeOK(w, h.checkoutViewOf(st, o), nil)
}

func (h *Handler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	st, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}
	var req struct {
		PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}
	o.SetPaymentMethod(req.PaymentMethod)
	writeOK(w, h.checkoutViewOf(st, o), nil)
}

func (h *Handler) ValidateCheckout(w http.ResponseWriter, r *http.Request) {
	_, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}
	if errs := o.Validate(); errs != nil {
		writeError(w, r, errs, "Invalid form")
		return
	}
	writeOK(w, nil, nil)
}

func (h *Handler) SaveDelivery(w http.ResponseWriter, r *http.Request) {
	_, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}
	if err := o.SaveDeliveryDetails(r.Context()); err != nil {
		writeError(w, r, err, "Failed to save delivery details")
		return
	}
	writeOK(w, nil, notice.Success("Delivery details saved for future orders"))
}

type submitView struct {
	Kind        checkout.ResultKind `json:"kind"`
	Order       *order.Order        `json:"order"`
	CartCleared bool                `json:"cartCleared"`
	Handoff     *payment.Handoff    `json:"handoff,omitempty"`
	PaymentURL  string              `json:"paymentUrl,omitempty"`
}

// SubmitCheckout places the order. Card payments come back with the URL of
// the external payment step.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	st, o, err := currentCheckout(r)
	if err != nil {
		writeError(w, r, err, "No checkout in progress")
		return
	}

	res, err := o.Submit(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to place order")
		return
	}

	view := submitView{Kind: res.Kind, Order: res.Order, CartCleared: res.CartCleared}
	if res.Kind != checkout.ResultPaymentHandoff {
		writeOK(w, view, res.Notice)
		return
	}

	source := payment.SourceCart
	if res.Handoff.Source == checkout.ModeDirect {
		source = payment.SourceDirect
	}
	handoff, link, err := h.Payments.Begin(r.Context(), payment.BeginParams{
		OrderRef:      res.Handoff.OrderRef,
		ServiceType:   res.Handoff.ServiceType,
		Total:         res.Handoff.Total,
		RecipientName: res.Handoff.RecipientName,
		UserID:        st.User.ID,
		Source:        source,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Error("order placed but payment hand-off failed",
			zap.String("order_ref", res.Handoff.OrderRef),
			zap.Error(err),
		)
		writeError(w, r, err, "Order placed, but the payment step could not be started")
		return
	}

	view.Handoff = handoff
	view.PaymentURL = link
	writeOK(w, view, nil)
}
