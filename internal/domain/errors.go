package domain

import "errors"

// Sentinel errors raised by the auth core. The transport layer maps each to a
// distinct user-facing code, except token errors which the access guard
// collapses into a single unauthorized response.
var (
	ErrAccountConflict    = errors.New("account already registered")
	ErrAccountNotFound    = errors.New("account not found or role mismatch")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
