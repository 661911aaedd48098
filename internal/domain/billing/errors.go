package billing

import "errors"

var (
	ErrPaymentRequired     = errors.New("listing credits or an active subscription are required")
	ErrAccountNotFound     = errors.New("billing account not found")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrProviderUnavailable = errors.New("payment provider request failed")
	ErrProviderNotConfigured = errors.New("payment provider is not configured")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
)
