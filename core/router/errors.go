package router

import "errors"

var (
	// Configuration errors, surfaced from Build.
	ErrNilHandler       = errors.New("nil handler")
	ErrNilMethodRouter  = errors.New("nil method router")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrMethodConflict   = errors.New("method already registered")
	ErrFallbackConflict = errors.New("fallback already registered")

	// Pattern errors, detected at registration or Build time.
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrDuplicatePattern = errors.New("duplicate route path pattern")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrWildcardPosition = errors.New("wildcard must be the last segment")
)
