package order

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAlreadyPaid      = errors.New("order already paid")
	ErrStockConflict    = errors.New("insufficient stock for order item")
	ErrAlreadyActivated = errors.New("warranty already activated")
)
