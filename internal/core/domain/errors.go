package domain

import "errors"

// Sentinel errors mapped to HTTP status codes at the adapter boundary.
var (
	// ErrUnauthorized indicates the Authorization header is missing or not a Bearer scheme.
	ErrUnauthorized = errors.New("missing or malformed authorization header")

	// ErrForbidden indicates the bearer token does not match the configured key.
	ErrForbidden = errors.New("invalid bearer token")

	// ErrEmptyBody indicates the request body contained no bytes.
	ErrEmptyBody = errors.New("empty request body")

	// ErrInternal indicates an unrecoverable system error (temp file, out of memory).
	ErrInternal = errors.New("internal error")
)
