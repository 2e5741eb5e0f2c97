package service

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPersistence      = errors.New("cart persistence failed")
	ErrMalformedState   = errors.New("malformed cart state")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrQueueClosed      = errors.New("order queue closed")
)
