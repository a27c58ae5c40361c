package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingSubject indicates a structurally valid token without a
	// subject claim, so it cannot be resolved to a user.
	ErrMissingSubject = errors.New("authentication token has no subject claim")

	// ErrInvalidCredentials indicates an email/password pair that does
	// not match a stored user. Deliberately generic: callers must not
	// reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
