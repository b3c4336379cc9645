package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed email/password check.
	// It deliberately does not distinguish unknown email from wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
