package response

import (
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// WithHeader wraps a response and sets an additional header before rendering.
func WithHeader(response handler.Response, key, value string) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(key, value)
		return response(w, r)
	}
}

// WithNoCache instructs clients not to serve the response from cache.
func WithNoCache(response handler.Response) handler.Response {
	return WithHeader(response, "Cache-Control", "no-cache, no-store, max-age=0")
}

// WithCookie wraps a response and adds a Set-Cookie header before rendering.
func WithCookie(response handler.Response, cookie *http.Cookie) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		if cookie != nil {
			http.SetCookie(w, cookie)
		}
		return response(w, r)
	}
}
