package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aman-4321/CourseVault/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/api/v1/course/course/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/api/v1/course/course/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/course/course/abc", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/api/v1/course/course/{id}", "404"))

	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.Purchases.WithLabelValues("created"))
	metrics.RecordPurchase("created")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Purchases.WithLabelValues("created")))

	before = testutil.ToFloat64(metrics.AuthEvents.WithLabelValues("admin", "signin"))
	metrics.RecordAuth("admin", "signin")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuthEvents.WithLabelValues("admin", "signin")))
}

func TestHandlerServesRegistry(t *testing.T) {
	metrics.RecordAuth("user", "signup")

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coursevault_auth_events_total")
}
