// Package router implements an ordered-table HTTP dispatcher.
//
// Routes are registered once at startup as (method, exact path, handler)
// entries. Dispatch walks the table in registration order and selects the
// first entry whose method and path match the request exactly: no wildcards,
// no trailing-slash normalization, no prefix matching. When duplicate
// (method, path) pairs are registered, the first one wins. Requests that
// match no entry receive a fixed 400 "bad request" response.
package router

import (
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// Router is the routing interface for handling HTTP requests.
// The route table is append-only during registration and immutable while
// serving; it must not be modified after the server starts.
type Router[C handler.Context] interface {
	http.Handler

	Get(path string, fn handler.HandlerFunc[C])
	Post(path string, fn handler.HandlerFunc[C])
	Put(path string, fn handler.HandlerFunc[C])
	Patch(path string, fn handler.HandlerFunc[C])
	Delete(path string, fn handler.HandlerFunc[C])

	// Method registers a handler for an arbitrary HTTP method.
	Method(method, path string, fn handler.HandlerFunc[C])

	// Use appends middleware applied to every matched handler.
	// Must be called before any route is registered.
	Use(middlewares ...handler.Middleware[C])

	// Routes returns the registered routes in registration order.
	Routes() []Route
}

// Route describes a single entry in the route table.
type Route struct {
	Method string
	Path   string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
