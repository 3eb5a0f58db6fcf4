// Package logger wraps log/slog construction and provides nil-safe
// attribute helpers.
package logger

import (
	"log/slog"
	"os"
)

type options struct {
	level       slog.Level
	development bool
	appName     string
}

// Option configures logger construction.
type Option func(*options)

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithDevelopment switches to a human-readable text handler with debug level
// and tags records with the application name.
func WithDevelopment(appName string) Option {
	return func(o *options) {
		o.development = true
		o.level = slog.LevelDebug
		o.appName = appName
	}
}

// WithAppName tags every record with the application name.
func WithAppName(appName string) Option {
	return func(o *options) {
		o.appName = appName
	}
}

// New creates a slog.Logger writing to stdout. JSON output by default,
// text output in development mode.
func New(opts ...Option) *slog.Logger {
	o := options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}

	var h slog.Handler
	if o.development {
		h = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	log := slog.New(h)
	if o.appName != "" {
		log = log.With(slog.String("app", o.appName))
	}
	return log
}
