package auth

import "errors"

var (
	// ErrSaltEmpty is returned when the hasher is constructed without a salt.
	ErrSaltEmpty = errors.New("password salt cannot be empty")

	// ErrSaltTooShort is returned when the configured salt is shorter than the minimum.
	ErrSaltTooShort = errors.New("password salt is too short")

	// ErrPasswordEmpty is returned when an empty password is passed to the hasher.
	ErrPasswordEmpty = errors.New("password cannot be empty")

	// ErrSigningKeyEmpty is returned when the token service is constructed without a signing key.
	ErrSigningKeyEmpty = errors.New("token signing key cannot be empty")

	// ErrInvalidCredentials is returned for every failed login. It is
	// intentionally undifferentiated: an unknown user, a wrong password and a
	// disabled account all produce this same error.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenInvalid is returned for every failed session resolution. It is
	// intentionally undifferentiated: a bad signature, an expired token and a
	// subject that resolves to no enabled user all produce this same error.
	ErrTokenInvalid = errors.New("invalid session token")
)
