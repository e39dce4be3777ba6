package domain

import "errors"

// Error taxonomy shared by every boundary. Package-level sentinels wrap one of these
// so callers can match either the precise rejection or its category.
var (
	// ErrValidation malformed or missing input, rejected before any side effect
	ErrValidation = errors.New("validation error")

	// ErrAuthorization caller role or identity does not match the target
	ErrAuthorization = errors.New("authorization error")

	// ErrConflict slot taken or concurrent modification
	ErrConflict = errors.New("conflict error")

	// ErrNotFound referenced entity is missing or soft-deleted
	ErrNotFound = errors.New("not found error")

	// ErrState operation not allowed in the current order state
	ErrState = errors.New("state error")
)
