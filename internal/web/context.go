// Package web carries the application's HTTP surface: the per-request
// context, the page and fragment templates, and the handlers behind each
// route.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/scrawl/internal/binder"
)

// Context is the request context passed to handlers. It satisfies
// context.Context by delegating to the request's context, so values set by
// middleware travel with the request.
type Context struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext is the context factory handed to the router.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

func (c *Context) Request() *http.Request              { return c.r }
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// SetValue stores a value in the request context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Context) Err() error                  { return c.r.Context().Err() }
func (c *Context) Value(key any) any           { return c.r.Context().Value(key) }

var formBinder = binder.Form()

// Bind decodes the urlencoded form body into v.
func (c *Context) Bind(v any) error {
	return formBinder(c.r, v)
}
