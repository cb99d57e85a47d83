package handler

import (
	"net/http"

	"pawmart-web/internal/cart"
	"pawmart-web/internal/notice"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Items     []cart.Item     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func viewOf(c cart.Cart) cartView {
	return cartView{Items: c.Items, Total: c.Total(), ItemCount: c.ItemCount()}
}

type quantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	st := mustSession(r)
	writeOK(w, viewOf(st.Cart.FetchCart(r.Context())), nil)
}

// Mutations always answer with the refetched cart. A failed mutation still
// returns 200 with the fresh cart and an error notice.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}
	if req.ProductID == "" {
		writeError(w, r, cart.ErrMissingProductID, "Product is required")
		return
	}

	st := mustSession(r)
	err := st.Cart.AddItem(r.Context(), req.ProductID, req.Quantity)
	h.cartResult(w, st.Cart.Snapshot(), err, "Added to cart", "Failed to add item to cart")
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err, "Invalid request")
		return
	}

	st := mustSession(r)
	err := st.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Quantity)
	h.cartResult(w, st.Cart.Snapshot(), err, "", "Failed to update quantity")
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	st := mustSession(r)
	err := st.Cart.RemoveItem(r.Context(), chi.URLParam(r, "itemID"))
	h.cartResult(w, st.Cart.Snapshot(), err, "Item removed", "Failed to remove item")
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	st := mustSession(r)
	err := st.Cart.Clear(r.Context())
	h.cartResult(w, st.Cart.Snapshot(), err, "Cart cleared", "Failed to clear cart")
}

func (h *Handler) cartResult(w http.ResponseWriter, c cart.Cart, err error, success, failure string) {
	var n *notice.Notice
	switch {
	case err != nil:
		n = notice.FromError(err, failure)
	case success != "":
		n = notice.Success(success)
	}
	writeOK(w, viewOf(c), n)
}
