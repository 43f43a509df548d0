// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrInvalidState indicates that a record exists but is not in
// the state a transition requires, while ErrInsufficientStock signals
// that a reservation or adjustment would overdraw a plant's counters.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity is absent.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique email
// constraint (users or partners).  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidState is returned when a lifecycle transition is attempted on a
// record whose current status is not the required predecessor, e.g.
// completing an already-completed deal.  Handlers translate it into 409.
var ErrInvalidState = errors.New("invalid state for transition")

// InsufficientStockError reports a reservation or adjustment that exceeds a
// plant's bookable quantity.  Available carries the bookable amount at the
// time of the failed attempt so handlers can surface it to the caller.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// IsInsufficientStock reports whether err wraps an InsufficientStockError
// and returns the available amount when it does.
func IsInsufficientStock(err error) (int64, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise.Available, true
	}
	return 0, false
}
