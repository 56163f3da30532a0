package core

import "errors"

// Sentinel errors returned by the cart and checkout engines. Ownership
// failures surface as the same not-found errors as missing rows so callers
// cannot probe for other users' data.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)
