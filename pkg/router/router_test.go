package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/aman-4321/CourseVault/pkg/router"
)

func tag(value string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupPrefixesAndMiddleware(t *testing.T) {
	r := router.New()
	api := r.Group("/api/v1", tag("api"))
	admin := api.Group("admin", tag("admin"))
	admin.Delete("/course/{id}", "admin.course.delete", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/course/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())
	assert.Equal(t, []string{"api", "admin"}, rec.Header().Values("X-Chain"))
}

func TestMethodsAreDistinct(t *testing.T) {
	r := router.New()
	r.Put("/course", "course.update", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/course", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/course", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Post("/b", "b.store", noop)
	r.Get("/b", "", noop)
	r.Handle(http.MethodGet, "/a", "a", http.HandlerFunc(noop))

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/a", Name: "a"},
		{Method: http.MethodGet, Path: "/b"},
		{Method: http.MethodPost, Path: "/b", Name: "b.store"},
	}, r.Routes())
}
