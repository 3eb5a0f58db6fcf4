package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// Option configures the router during construction.
type Option[C handler.Context] func(*mux[C])

// WithContextFactory sets the factory used to build the per-request context.
func WithContextFactory[C handler.Context](factory func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = factory
	}
}

// WithErrorHandler overrides the default error handler.
func WithErrorHandler[C handler.Context](eh handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if eh != nil {
			m.errorHandler = eh
		}
	}
}

// WithMiddleware appends global middleware at construction time.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithLogger sets the logger used for panics that occur after the response
// has been written.
func WithLogger[C handler.Context](log *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if log != nil {
			m.logger = log
		}
	}
}
