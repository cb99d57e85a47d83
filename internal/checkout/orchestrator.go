// Package checkout turns either the session cart or a direct-buy selection
// into one order submission.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"pawmart-web/internal/cart"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/notice"
	"pawmart-web/internal/order"
	"pawmart-web/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeCart   Mode = "cart"
	ModeDirect Mode = "direct"
)

// ModeFromDirectFlag maps the UI's "direct" query flag onto a Mode.
func ModeFromDirectFlag(direct bool) Mode {
	if direct {
		return ModeDirect
	}
	return ModeCart
}

// PaymentServiceType tags every card hand-off coming from checkout.
const PaymentServiceType = "Order"

// CartSource is the part of the session cart checkout depends on. *cart.Store satisfies it.
type CartSource interface {
	FetchCart(ctx context.Context) cart.Cart
	Snapshot() cart.Cart
	Total() decimal.Decimal
	Clear(ctx context.Context) error
}

type Deps struct {
	Cart   CartSource
	Orders order.API
	Users  user.API

	// CatalogPath is where a failed direct-buy mount sends the user.
	CatalogPath string
}

type ResultKind string

const (
	ResultFinalized      ResultKind = "finalized"
	ResultPaymentHandoff ResultKind = "payment_handoff"
)

// Handoff is what the external card payment step needs.
type Handoff struct {
	ServiceType   string          `json:"serviceType"`
	Total         decimal.Decimal `json:"total"`
	RecipientName string          `json:"recipientName"`
	OrderRef      string          `json:"orderRef"`
	Source        Mode            `json:"source"`
}

type Result struct {
	Kind        ResultKind     `json:"kind"`
	Order       *order.Order   `json:"order"`
	Handoff     *Handoff       `json:"handoff,omitempty"`
	CartCleared bool           `json:"cartCleared"`
	Notice      *notice.Notice `json:"notice,omitempty"`
}

// Orchestrator is one checkout "mount". Its mode is fixed at construction.
type Orchestrator struct {
	mode   Mode
	userID string
	deps   Deps

	mu         sync.Mutex
	mounted    bool
	loaded     bool
	submitting bool
	submitted  bool
	selection  *order.DirectBuySelection
	delivery   order.DeliveryDetails
	method     order.PaymentMethod
}

func New(mode Mode, userID string, deps Deps) *Orchestrator {
	if deps.CatalogPath == "" {
		deps.CatalogPath = "/products"
	}
	return &Orchestrator{mode: mode, userID: userID, deps: deps}
}

func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// Mount loads the order source and pre-fills the delivery form.
//
// In direct mode a missing selection is fatal: the returned *RedirectError
// points back at the catalog. Pre-fill runs at most once per orchestrator so a
// second Mount never overwrites what the user typed.
func (o *Orchestrator) Mount(ctx context.Context) error {
	log := o.log(ctx, "Mount")

	switch o.mode {
	case ModeDirect:
		sel, err := o.deps.Orders.GetDirectBuy(ctx)
		if err != nil {
			log.Warn("direct-buy data unavailable, redirecting to catalog", zap.Error(err))
			return &RedirectError{
				To:  o.deps.CatalogPath,
				Err: fmt.Errorf("%w: %w", ErrDirectBuyUnavailable, err),
			}
		}
		o.mu.Lock()
		o.selection = sel
		o.mu.Unlock()
	default:
		o.deps.Cart.FetchCart(ctx)
	}

	o.mu.Lock()
	o.mounted = true
	needPrefill := !o.loaded && o.userID != ""
	o.loaded = true
	o.mu.Unlock()

	if needPrefill {
		o.prefill(ctx)
	}
	return nil
}

func (o *Orchestrator) prefill(ctx context.Context) {
	profile, err := o.deps.Users.GetProfile(ctx, o.userID)
	if err != nil {
		o.log(ctx, "prefill").Warn("could not load profile for delivery pre-fill", zap.Error(err))
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	// Edits made while the profile was loading take precedence.
	if o.delivery == (order.DeliveryDetails{}) {
		o.delivery = profile.DeliveryPrefill()
	}
}

func (o *Orchestrator) SetDelivery(d order.DeliveryDetails) {
	o.mu.Lock()
	o.delivery = d
	o.mu.Unlock()
}

func (o *Orchestrator) Delivery() order.DeliveryDetails {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.delivery
}

func (o *Orchestrator) SetPaymentMethod(m order.PaymentMethod) {
	o.mu.Lock()
	o.method = m
	o.mu.Unlock()
}

func (o *Orchestrator) PaymentMethod() order.PaymentMethod {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.method
}

// Selection returns the direct-buy selection, nil in cart mode or before Mount.
func (o *Orchestrator) Selection() *order.DirectBuySelection {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selection == nil {
		return nil
	}
	sel := *o.selection
	return &sel
}

// Total is the cart total in cart mode and price × quantity of the selection
// in direct mode; the two never mix.
func (o *Orchestrator) Total() decimal.Decimal {
	if o.mode == ModeDirect {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.selection == nil {
			return decimal.Zero
		}
		return o.selection.Total()
	}
	return o.deps.Cart.Total()
}

// Validate returns every form problem at once, or nil when the form is valid.
func (o *Orchestrator) Validate() ValidationErrors {
	o.mu.Lock()
	d, m := o.delivery, o.method
	o.mu.Unlock()
	return ValidateForm(d, m)
}

// Submit places the order.
//
// Nothing is sent when the form is invalid. A card payment returns a hand-off
// for the external payment step and leaves the cart alone; cash on delivery
// finalizes immediately and, in cart mode, clears the cart. A failed backend
// call leaves every piece of state as it was.
func (o *Orchestrator) Submit(ctx context.Context) (*Result, error) {
	log := o.log(ctx, "Submit")

	o.mu.Lock()
	switch {
	case o.submitting:
		o.mu.Unlock()
		return nil, ErrSubmitInProgress
	case o.submitted:
		o.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	o.submitting = true
	delivery, method, selection, mounted := o.delivery, o.method, o.selection, o.mounted
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.submitting = false
		o.mu.Unlock()
	}()

	if errs := ValidateForm(delivery, method); errs != nil {
		log.Info("checkout form invalid", zap.Int("errors", len(errs)))
		return nil, errs
	}

	req, err := o.buildRequest(delivery, method, selection, mounted)
	if err != nil {
		return nil, err
	}

	log = log.With(
		zap.String("payment_method", string(method)),
		zap.String("total", req.TotalAmount.String()),
		zap.Int("item_count", len(req.Items)),
	)

	var created *order.Order
	if o.mode == ModeDirect {
		created, err = o.deps.Orders.ProcessDirectBuy(ctx, req)
	} else {
		created, err = o.deps.Orders.PlaceOrder(ctx, req)
	}
	if err != nil {
		log.Warn("order submission failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	o.mu.Lock()
	o.submitted = true
	o.mu.Unlock()

	if method == order.PaymentCard {
		log.Info("order created, handing off to card payment", zap.String("order_id", created.ID))
		return &Result{
			Kind:  ResultPaymentHandoff,
			Order: created,
			Handoff: &Handoff{
				ServiceType:   PaymentServiceType,
				Total:         req.TotalAmount,
				RecipientName: delivery.Name,
				OrderRef:      created.ID,
				Source:        o.mode,
			},
		}, nil
	}

	res := &Result{Kind: ResultFinalized, Order: created, Notice: notice.Success("Order placed successfully")}
	if o.mode == ModeCart {
		if err := o.deps.Cart.Clear(ctx); err != nil {
			log.Warn("order placed but cart clear failed", zap.String("order_id", created.ID), zap.Error(err))
			res.Notice = notice.Warning("Order placed, but your cart could not be cleared. Please refresh.")
		} else {
			res.CartCleared = true
		}
	}

	log.Info("order finalized", zap.String("order_id", created.ID), zap.Bool("cart_cleared", res.CartCleared))
	return res, nil
}

func (o *Orchestrator) buildRequest(
	delivery order.DeliveryDetails,
	method order.PaymentMethod,
	selection *order.DirectBuySelection,
	mounted bool,
) (order.PlaceOrderRequest, error) {
	req := order.PlaceOrderRequest{
		PaymentMethod:   method,
		PaymentStatus:   order.PaymentStatusPending,
		Status:          order.StatusPending,
		DeliveryDetails: delivery,
	}

	if o.mode == ModeDirect {
		if !mounted || selection == nil || selection.Product == nil {
			return req, ErrNotMounted
		}
		req.Items = []order.Item{{
			ProductID: selection.Product.ID,
			Quantity:  cart.ClampQuantity(selection.Quantity),
			Price:     selection.Product.Price,
		}}
		req.TotalAmount = selection.Total()
		return req, nil
	}

	snap := o.deps.Cart.Snapshot()
	for _, it := range snap.Items {
		if it.Product == nil {
			continue
		}
		req.Items = append(req.Items, order.Item{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}
	if len(req.Items) == 0 {
		return req, ErrEmptyCart
	}
	req.TotalAmount = snap.Total()
	return req, nil
}

// SaveDeliveryDetails stores the current delivery form on the user's profile
// for future orders. It does not touch checkout state.
func (o *Orchestrator) SaveDeliveryDetails(ctx context.Context) error {
	if o.userID == "" {
		return user.ErrUserNotAuthenticated
	}

	d := o.Delivery()
	if !d.Complete() {
		return ErrIncompleteDelivery
	}

	if _, err := o.deps.Users.UpdateProfile(ctx, o.userID, user.UpdateProfileParams{DeliveryDetails: &d}); err != nil {
		o.log(ctx, "SaveDeliveryDetails").Warn("saving delivery details failed", zap.Error(err))
		return fmt.Errorf("save delivery details: %w", err)
	}
	return nil
}

func (o *Orchestrator) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", method),
		zap.String("mode", string(o.mode)),
	)
}
