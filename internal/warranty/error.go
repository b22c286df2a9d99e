package warranty

import "errors"

var (
	ErrClaimNotFound      = errors.New("warranty claim not found")
	ErrInvalidStatus      = errors.New("invalid claim status")
	ErrClaimClosed        = errors.New("claim is already completed or rejected")
	ErrItemNotFound       = errors.New("order item not found for claim")
	ErrOrderNotDelivered  = errors.New("order has not been delivered")
	ErrWarrantyNotActive  = errors.New("warranty has not been activated for this item")
	ErrUnauthorized       = errors.New("not allowed to access this claim")
	ErrDescriptionMissing = errors.New("problem description is required")
)
