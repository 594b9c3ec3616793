package entities

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrDuplicateOrder     = errors.New("order with this idempotency key already exists")
	ErrIdempotencyKeyUsed = errors.New("idempotency key belongs to another customer")
)

type InsufficientStockError struct {
	ProductID string
	Size      string
	Requested int
	Available int
}

// Available < 0 means the remaining stock is unknown, e.g. it was taken by a concurrent checkout.
func (e *InsufficientStockError) Error() string {
	target := "product " + e.ProductID
	if e.Size != "" {
		target += " size " + e.Size
	}
	if e.Available < 0 {
		return fmt.Sprintf("insufficient stock for %s: requested %d", target, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", target, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
