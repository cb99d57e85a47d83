package order

import "errors"

var (
	ErrNoDirectBuySelection = errors.New("no direct-buy selection for this session")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrMissingProductID     = errors.New("product id is required")
)
