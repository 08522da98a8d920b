package approval

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for an unknown approval id. Callers always
	// expect a preceding successful creation, so this is a hard error, not
	// an empty result.
	ErrNotFound = errors.New("approval: request not found")

	// ErrWaitTimeout is returned when WaitForResolution exhausts the
	// caller-supplied budget. It is about the caller's patience, not the
	// request's validity window - the request itself is left untouched.
	ErrWaitTimeout = errors.New("approval: wait timed out")
)

// AlreadyResolvedError signals an attempted transition on a request that
// already reached a terminal status. It carries that status so the caller
// can reconcile, e.g. treat a racing expiry as a rejection.
type AlreadyResolvedError struct {
	ID     string
	Status Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("approval %s already resolved as %s", e.ID, e.Status)
}

// IsAlreadyResolved reports whether err is an AlreadyResolvedError and
// returns the terminal status it carries.
func IsAlreadyResolved(err error) (Status, bool) {
	var resolved *AlreadyResolvedError
	if errors.As(err, &resolved) {
		return resolved.Status, true
	}
	return "", false
}
