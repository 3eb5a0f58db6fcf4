package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

var (
	// ErrNoContextFactory is returned when the router is built without a context factory.
	ErrNoContextFactory = errors.New("no context factory provided")
	// ErrRouteNotFound is returned when no (method, path) entry matches the request.
	ErrRouteNotFound = errors.New("bad request")
	// ErrNilResponse is returned when a handler produces a nil response.
	ErrNilResponse = errors.New("nil response")
	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("nil handler")
	// ErrInvalidMethod is returned when an empty HTTP method is registered.
	ErrInvalidMethod = errors.New("invalid http method")
	// ErrInvalidPattern is returned when a route path does not start with a slash.
	ErrInvalidPattern = errors.New("invalid route path pattern")
)

// defaultErrorHandler provides default error handling. Unmatched routes get
// the fixed bad-request response; everything else is a 500.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	if errors.Is(err, ErrRouteNotFound) {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// PanicError allows external error handlers to detect and handle panics
// recovered by the router.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}
