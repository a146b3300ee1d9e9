package authentication

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be parsed
	// or fails validation.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidCredentials is returned for every failed login, whatever the
	// underlying cause.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInternalServerError is returned for unexpected failures.
	ErrInternalServerError = errors.New("internal server error")
)
