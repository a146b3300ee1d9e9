package config

import (
	"time"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/logger"
)

// JWT holds the session-token settings. The signing key is loaded once at
// startup and passed explicitly to the token service; it is never exposed as
// an ambient global.
type JWT struct {
	SigningKey string
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
	Argon2Salt   string // process-wide salt for argon2 password hashing
	JWT          JWT    // session token settings
}
