// Package middleware provides cross-cutting request middleware for the
// router: request identifiers and structured request logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// requestIDContextKey is used as a key for storing the request ID in context.
type requestIDContextKey struct{}

// requestIDHeader is the header the ID is echoed back in.
const requestIDHeader = "X-Request-ID"

// RequestID assigns a unique identifier to each request for tracing and
// logging. The ID is stored in context and added to response headers.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			requestID := uuid.New().String()
			ctx.SetValue(requestIDContextKey{}, requestID)

			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(requestIDHeader, requestID)
				return response(w, r)
			}
		}
	}
}

// GetRequestID retrieves the request ID from the context.
// Returns the ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
