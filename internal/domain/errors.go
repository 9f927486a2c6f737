package domain

import "errors"

var (
	ErrShippingNotFound = errors.New("shipping not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCarrierNotFound  = errors.New("carrier not found")
	ErrActionNotFound   = errors.New("action not found")
)
