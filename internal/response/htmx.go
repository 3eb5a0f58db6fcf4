package response

import (
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// HTMX response headers - sent by server to control HTMX behavior.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
)

// HTMX request headers - sent by the HTMX client to the server.
const (
	HeaderHXRequest = "HX-Request"
)

// HTMXOption configures HTMX-specific response headers.
type HTMXOption func(*htmxConfig)

type htmxConfig struct {
	reswap   string
	retarget string
}

// WithHTMX wraps any response with HTMX-specific headers.
func WithHTMX(response handler.Response, opts ...HTMXOption) handler.Response {
	if response == nil {
		return nil
	}

	if len(opts) == 0 {
		return response
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		cfg := &htmxConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		if cfg.reswap != "" {
			w.Header().Set(HeaderHXReswap, cfg.reswap)
		}
		if cfg.retarget != "" {
			w.Header().Set(HeaderHXRetarget, cfg.retarget)
		}

		return response(w, r)
	}
}

// Reswap sets the HX-Reswap header to modify swap behavior.
// Examples: "innerHTML", "outerHTML", "beforebegin", "afterend"
func Reswap(method string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.reswap = method
	}
}

// Retarget sets the HX-Retarget header to change the target element.
// The selector should be a CSS selector.
func Retarget(selector string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.retarget = selector
	}
}

// IsHTMXRequest checks if the request is from an HTMX client.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}
