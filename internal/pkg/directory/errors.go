package directory

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable signals that the underlying store could not be
// reached or errored. It is distinct from an empty result set so callers can
// tell an outage from a legitimately empty page.
var ErrStorageUnavailable = errors.New("business storage unavailable")

// ErrNotFound signals that a direct lookup matched nothing. It is distinct
// from an empty search result.
var ErrNotFound = errors.New("business not found")

// ValidationError reports malformed query options. Invalid enumerated values
// are rejected rather than silently defaulted so caller bugs stay visible.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
