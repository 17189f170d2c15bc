package shared

import "errors"

// Error kinds. Domain errors wrap one of these with %w so callers can
// branch on the kind without knowing the concrete sentinel.
var (
	// ErrNotFound: operation referenced an id that does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidState: transition not allowed from the current status
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation: malformed input rejected at a boundary
	ErrValidation = errors.New("validation failed")
)

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
