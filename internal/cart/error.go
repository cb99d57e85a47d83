package cart

import "errors"

var (
	ErrMissingProductID = errors.New("product id is required")
	ErrMissingItemID    = errors.New("cart item id is required")
)
