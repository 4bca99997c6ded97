package service

import (
	"errors"
	"fmt"
)

// Validation failures: no persistence has happened, the user can correct
// the input and retry.
var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrNoShippingAddress    = errors.New("no shipping address available")
	ErrInvalidPaymentMethod = errors.New("payment method must be card or pix")
	ErrInvalidSize          = errors.New("size is not in the available size set")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
)

// Checkout stages, recorded on PersistenceError so callers can tell an
// orphaned-order failure (order written, lines not) from earlier ones.
const (
	StageCart       = "cart"
	StageAddress    = "address"
	StageOrder      = "order"
	StageOrderLines = "order_lines"
)

// PersistenceError wraps an I/O failure from one checkout stage. Completed
// earlier stages are not rolled back; the cart stays intact so the user can
// retry.
type PersistenceError struct {
	Stage string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("checkout stage %s failed: %v", e.Stage, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
