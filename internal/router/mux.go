package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// entry is a single route table row.
type entry[C handler.Context] struct {
	method string
	path   string
	fn     handler.HandlerFunc[C]
}

// mux is the private implementation of Router.
type mux[C handler.Context] struct {
	entries      []entry[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		panic(ErrNoContextFactory)
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	ctx := m.newContext(ww, r)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// Can't send an error response anymore, just log the panic
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	// First registered match wins; subsequent duplicates are shadowed.
	var fn handler.HandlerFunc[C]
	for _, e := range m.entries {
		if e.method != r.Method {
			continue
		}
		if e.path != path {
			continue
		}
		fn = e.fn
		break
	}

	if fn == nil {
		m.errorHandler(ctx, ErrRouteNotFound)
		return
	}

	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(path string, fn handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, path, fn)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(path string, fn handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, path, fn)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(path string, fn handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, path, fn)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(path string, fn handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, path, fn)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(path string, fn handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, path, fn)
}

// Method registers a handler for an arbitrary HTTP method.
func (m *mux[C]) Method(method, path string, fn handler.HandlerFunc[C]) {
	if method == "" {
		panic(ErrInvalidMethod)
	}
	m.handle(method, path, fn)
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if len(m.entries) > 0 {
		panic("scrawl: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	routes := make([]Route, len(m.entries))
	for i, e := range m.entries {
		routes[i] = Route{Method: e.method, Path: e.path}
	}
	return routes
}

// handle appends a route table entry.
func (m *mux[C]) handle(method, path string, fn handler.HandlerFunc[C]) {
	if len(path) == 0 || path[0] != '/' {
		panic(ErrInvalidPattern)
	}
	if fn == nil {
		panic(ErrNilHandler)
	}
	m.entries = append(m.entries, entry[C]{method: method, path: path, fn: fn})
}
