// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func Show(c *ctx.Context) {
//	    course, err := svc.Get(c.Context(), c.Param("id"))
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(course)
//	}
//
//	router.Get("/course/{id}", "course.show", ctx.Wrap(Show))
package ctx

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/bind"
	"github.com/aman-4321/CourseVault/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

var maxBodyBytes atomic.Int64

// SetMaxBodyBytes caps request bodies read by BindJSON. Non-positive values
// restore bind.DefaultMaxBodyBytes.
func SetMaxBodyBytes(n int64) { maxBodyBytes.Store(n) }

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/course/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the caller bound by the auth gate.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.IdentityFrom(c.R.Context())
}

// MustIdentity is Identity for routes that always sit behind the gate.
func (c *Context) MustIdentity() auth.Identity {
	id, ok := c.Identity()
	if !ok {
		panic("ctx: no identity in request context")
	}
	return id
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On any failure it sends a 400 envelope and returns false.
//
//	var input SignupInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	if err := bind.JSON(c.W, c.R, dest, maxBodyBytes.Load()); err != nil {
		c.Fail(err)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Success sends a 200 envelope with data.
func (c *Context) Success(data any) {
	response.Success(c.W, data)
}

// Message sends an envelope carrying a message and optional data.
func (c *Context) Message(code int, message string, data any) {
	response.Write(c.W, code, response.Envelope{Status: code, Message: message, Data: data})
}

// Fail maps an application error to its status and public message.
func (c *Context) Fail(err error) {
	response.Fail(c.W, c.R, err)
}
