package cart

import (
	"context"
	"net/url"

	"pawmart-web/internal/apiclient"
)

// Backend is the server-side cart the Store mirrors.
type Backend interface {
	GetCart(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
}

type remote struct {
	api *apiclient.Client
}

func NewRemote(api *apiclient.Client) Backend {
	return &remote{api: api}
}

func (r *remote) GetCart(ctx context.Context) (*Cart, error) {
	var c Cart
	if err := r.api.Get(ctx, "/api/cart", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *remote) AddItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return r.api.Post(ctx, "/api/cart/add", body, nil)
}

func (r *remote) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return r.api.Put(ctx, "/api/cart/update/"+url.PathEscape(itemID), body, nil)
}

func (r *remote) RemoveItem(ctx context.Context, itemID string) error {
	return r.api.Delete(ctx, "/api/cart/remove/"+url.PathEscape(itemID), nil)
}

func (r *remote) Clear(ctx context.Context) error {
	return r.api.Delete(ctx, "/api/cart/clear", nil)
}
