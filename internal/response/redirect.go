package response

import (
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/handler"
)

// Redirect creates a 302 Found response to the given URL.
//
// HTMX requests always carry the HX-Request header set to "true". For those,
// the target is placed in the HX-Redirect header instead of Location so the
// client-side library performs the navigation itself. Neither variant writes
// a body.
func Redirect(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMXRequest(r) {
			w.Header().Set(HeaderHXRedirect, url)
		} else {
			w.Header().Set("Location", url)
		}
		w.WriteHeader(http.StatusFound)
		return nil
	}
}
