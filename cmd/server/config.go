package main

import (
	"time"

	"github.com/dmitrymomot/scrawl/internal/postgres"
	"github.com/dmitrymomot/scrawl/internal/server"
)

type appConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"scrawl"`
	Development bool   `env:"DEV_MODE" envDefault:"false"`

	// CookieName is the key the session token is carried under.
	CookieName string `env:"COOKIE_NAME" envDefault:"id"`
	// CookieSecure can be disabled for plain-HTTP local development.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// SessionTTL is the session max-age: expiry is set at creation time and
	// mirrored in the cookie's Max-Age attribute.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"86400s"`

	// SessionCleanupInterval controls how often expired session rows are
	// swept from storage.
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`

	DB     postgres.Config
	Server server.Config
}
