package domain

import "errors"

// Domain errors represent launcher logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSelection indicates an operation needed a result but none was selected.
	ErrNoSelection = errors.New("no result selected")

	// ErrUnknownResultType indicates a result carried a type discriminant
	// that is not one of the known kinds.
	ErrUnknownResultType = errors.New("unknown result type")

	// ErrResolverUnavailable indicates no result resolver is configured.
	ErrResolverUnavailable = errors.New("result resolver unavailable")

	// ErrUnsupportedPlatform indicates the OS has no shell integration.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
