package router

import "github.com/dmitrymomot/scrawl/internal/handler"

// chain builds a single handler from a middleware stack and endpoint.
// Middleware is applied in reverse order so the first registered runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
