package domain

import "errors"

// ErrNotFound is returned by read paths when a record does not exist.
// Owner-scoped mutations never return it: affecting zero rows is a
// silent success (the caller cannot distinguish "missing" from "not
// yours", and the dashboard depends on that).
var ErrNotFound = errors.New("not found")

// ValidationError is malformed or missing input, mapped to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is a missing or unresolvable session or bad credentials,
// mapped to 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ConflictError is a duplicate username or email. The HTTP layer maps
// it to 400, following the original API's convention.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
