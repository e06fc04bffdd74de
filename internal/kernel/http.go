// Package kernel builds the HTTP handler: the global middleware stack, the
// operational endpoints and the API routes.
package kernel

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aman-4321/CourseVault/app/routes"
	"github.com/aman-4321/CourseVault/pkg/metrics"
	"github.com/aman-4321/CourseVault/pkg/middleware"
	"github.com/aman-4321/CourseVault/pkg/reqid"
	"github.com/aman-4321/CourseVault/pkg/response"
	"github.com/aman-4321/CourseVault/pkg/router"
)

// Options configures New.
type Options struct {
	Log        *slog.Logger
	CORSOrigin string
	API        routes.Deps
	// Health is called by /healthz. Nil reports healthy.
	Health func(ctx context.Context) error
}

// New returns the router with everything mounted.
func New(opts Options) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger, tags the request logger with request_id
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger(opts.Log))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(opts.CORSOrigin)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(opts.Health))

	routes.RegisterAPI(r, opts.API)
	return r
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
