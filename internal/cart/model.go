package cart

import (
	"pawmart-web/internal/product"

	"github.com/shopspring/decimal"
)

// MinQuantity is the smallest quantity a cart line may hold.
const MinQuantity = 1

type Item struct {
	ID       string           `json:"_id"`
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// Cart is the client's read replica of the server-side cart.
type Cart struct {
	Items []Item `json:"items"`
}

func Empty() Cart {
	return Cart{Items: []Item{}}
}

// Total sums price × quantity over lines that still resolve to a product.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.LineTotal(it.Quantity))
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) clone() Cart {
	out := Cart{Items: make([]Item, len(c.Items))}
	for i, it := range c.Items {
		out.Items[i] = it
		if it.Product != nil {
			p := *it.Product
			out.Items[i].Product = &p
		}
	}
	return out
}

// ClampQuantity coerces q to at least MinQuantity.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}
