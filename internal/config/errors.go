package config

import "errors"

var (
	// ErrWebServerPortCanNotBeZero is returned when no listening port is configured.
	ErrWebServerPortCanNotBeZero = errors.New("webserver port can not be zero")

	// ErrEmptyURL is returned when no base url is configured.
	ErrEmptyURL = errors.New("webserver url can not be empty")

	// ErrEmptyDBURI is returned when no document store connection string is configured.
	ErrEmptyDBURI = errors.New("db uri can not be empty")

	// ErrEmptyDBName is returned when no database name is configured.
	ErrEmptyDBName = errors.New("db name can not be empty")

	// ErrEmptyArgon2Salt is returned when no password salt is configured
	// outside of dev mode.
	ErrEmptyArgon2Salt = errors.New("webserver argon2 salt can not be empty")

	// ErrEmptyJWTSigningKey is returned when no token signing key is
	// configured outside of dev mode.
	ErrEmptyJWTSigningKey = errors.New("webserver jwt signing key can not be empty")
)
