package state

import "errors"

// Sentinel errors returned by projection operations. Errors carry added
// context via %w wrapping; callers classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("forbidden")
)
