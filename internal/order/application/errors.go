package application

import (
	"errors"
	"fmt"
)

// ErrOutOfStock is the expected business outcome when at least one requested
// sku code is not in stock (or missing from the inventory response). It is not
// a system fault and callers should not retry it like one.
var ErrOutOfStock = errors.New("product is out of stock")

// AvailabilityError means the inventory query itself failed (network, timeout,
// non-success response, malformed payload). Retryable; never conflated with an
// out-of-stock rejection.
type AvailabilityError struct {
	Err error
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("inventory availability check failed: %v", e.Err)
}

func (e *AvailabilityError) Unwrap() error { return e.Err }

// StorageError means the durable write failed after stock was confirmed. The
// order was not placed; the whole operation is safe to retry (a retry gets a
// fresh order number).
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("order persistence failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
