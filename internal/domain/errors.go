package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can pick the user-facing message without
// leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrDependency   = errors.New("dependency failure")
)
