package service

import "errors"

// Error taxonomy surfaced to the transport layer. Handlers map these to
// status codes; anything else is an unclassified internal failure.
var (
	ErrDuplicateEmail    = errors.New("duplicate_email")
	ErrDuplicateUsername = errors.New("duplicate_username")
	ErrNotFound          = errors.New("not_found")

	// ErrInvalidCredentials covers both unknown username and wrong password
	// so login failures disclose nothing about which field was wrong.
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountInactive    = errors.New("inactive_account")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)
