package product

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		product  *Product
		quantity int
		expected string
	}{
		{"Price times quantity", &Product{Price: decimal.NewFromInt(1000)}, 2, "2000"},
		{"Fractional price", &Product{Price: decimal.RequireFromString("19.99")}, 3, "59.97"},
		{"Nil product", nil, 5, "0"},
		{"Zero quantity", &Product{Price: decimal.NewFromInt(10)}, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.LineTotal(tt.quantity).String())
		})
	}
}

func TestDisplayName(t *testing.T) {
	var missing *Product
	assert.Equal(t, "Unknown", missing.DisplayName())
	assert.Equal(t, "Unknown", (&Product{}).DisplayName())
	assert.Equal(t, "Dog Shampoo", (&Product{Name: "Dog Shampoo"}).DisplayName())
}

func TestProduct_DecodesBackendShape(t *testing.T) {
	raw := `{"_id":"p1","name":"Cat Tree","price":1499.5,"stock":4,"image":"/img/tree.png"}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "p1", p.ID)
	assert.True(t, decimal.RequireFromString("1499.5").Equal(p.Price))
	assert.Equal(t, "/img/tree.png", *p.ImageURL)
}
