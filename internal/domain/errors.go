package domain

import "errors"

// ErrValidation is the base error for every entity validation failure.
// The specific errors in user.go and task.go wrap it, so callers can
// match the whole family with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")
