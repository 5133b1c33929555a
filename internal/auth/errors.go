package auth

import "errors"

var (
	// ErrAccountExists indicates the account name is already registered.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound signals that the account could not be located.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUnauthorized represents missing or invalid authentication tokens.
	ErrUnauthorized = errors.New("unauthorized")
)
