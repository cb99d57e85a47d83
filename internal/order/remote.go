package order

import (
	"context"
	"fmt"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/logger"

	"go.uber.org/zap"
)

// API is the backend's order surface. Cart orders and direct-buy orders are
// finalized by two distinct endpoints because their server-side source differs.
type API interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	BuyNow(ctx context.Context, productID string, quantity int) error
	GetDirectBuy(ctx context.Context) (*DirectBuySelection, error)
	ProcessDirectBuy(ctx context.Context, req PlaceOrderRequest) (*Order, error)
}

type remote struct {
	api *apiclient.Client
}

func NewRemote(api *apiclient.Client) API {
	return &remote{api: api}
}

func (r *remote) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	return r.finalize(ctx, "/api/orders/place-order", req)
}

func (r *remote) ProcessDirectBuy(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	return r.finalize(ctx, "/api/orders/process-direct-buy", req)
}

func (r *remote) BuyNow(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrMissingProductID
	}
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	return r.api.Post(ctx, "/api/orders/direct-buy", body, nil)
}

func (r *remote) GetDirectBuy(ctx context.Context) (*DirectBuySelection, error) {
	var sel DirectBuySelection
	if err := r.api.Get(ctx, "/api/orders/direct-buy-data", &sel); err != nil {
		return nil, err
	}
	if sel.Product == nil {
		return nil, ErrNoDirectBuySelection
	}
	return &sel, nil
}

func (r *remote) finalize(ctx context.Context, path string, req PlaceOrderRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "order"),
		zap.String("endpoint", path),
		zap.Int("item_count", len(req.Items)),
		zap.String("payment_method", string(req.PaymentMethod)),
	)

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var o Order
	if err := r.api.Post(ctx, path, req, &o); err != nil {
		return nil, fmt.Errorf("finalize order: %w", err)
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return &o, nil
}
