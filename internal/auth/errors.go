package auth

import "errors"

var (
	// ErrInvalidInput is returned when the username or password fails validation.
	ErrInvalidInput = errors.New("invalid username or password input")

	// ErrDuplicateUsername is returned when attempting to register a username that already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrStoreUnavailable wraps failures of the credential store backend.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrSessionUnavailable wraps failures of the session storage backend.
	ErrSessionUnavailable = errors.New("session manager unavailable")
)
