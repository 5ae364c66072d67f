package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMalformedPath = errors.New("malformed category path")
	ErrDuplicateID   = errors.New("duplicate category identifier")
	ErrCycleDetected = errors.New("cycle detected in category tree")
	ErrNotAnnotated  = errors.New("forest not annotated")
	ErrLimitExceeded = errors.New("input limit exceeded")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)
