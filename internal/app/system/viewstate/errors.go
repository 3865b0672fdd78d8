// internal/app/system/viewstate/errors.go
package viewstate

import (
	"context"
	"errors"
	"fmt"
)

// Mutation failure classes. Backend failures are returned unclassified.
var (
	ErrInvalid       = errors.New("invalid input")
	ErrNotAllowed    = errors.New("action not allowed")
	ErrUnknownRecord = errors.New("record not in the current view")
)

// Invalid wraps a user-facing validation message in ErrInvalid.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// NotAllowed wraps a user-facing message in ErrNotAllowed.
func NotAllowed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotAllowed, fmt.Sprintf(format, args...))
}

// Resync brings a snapshot back in line after a successful write: Refetch
// re-runs the page load, PatchLocal applies the server echo through patch.
func (p Policy) Resync(ctx context.Context, refetch func(context.Context) error, patch func()) error {
	if p == PatchLocal {
		patch()
		return nil
	}
	return refetch(ctx)
}
