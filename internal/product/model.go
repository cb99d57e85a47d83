package product

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image,omitempty"`
}

// LineTotal is price × quantity. A nil product contributes zero so a cart line
// whose product was deleted upstream never breaks a total.
func (p *Product) LineTotal(quantity int) decimal.Decimal {
	if p == nil || quantity <= 0 {
		return decimal.Zero
	}
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// DisplayName falls back to "Unknown" for a missing product reference.
func (p *Product) DisplayName() string {
	if p == nil || p.Name == "" {
		return "Unknown"
	}
	return p.Name
}
