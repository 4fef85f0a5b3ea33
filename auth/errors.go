package auth

import "errors"

// ErrInvalidCredentials covers both an unknown email and a wrong
// password. Callers must not be able to tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports the first form rule that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
