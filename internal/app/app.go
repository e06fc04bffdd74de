// Package app wires configuration, stores, services and the HTTP kernel
// into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/app/routes"
	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/config"
	"github.com/aman-4321/CourseVault/internal/kernel"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/ctx"
	"github.com/aman-4321/CourseVault/pkg/database"
	"github.com/aman-4321/CourseVault/pkg/denylist"
	"github.com/aman-4321/CourseVault/pkg/logger"
	"github.com/aman-4321/CourseVault/pkg/middleware"
	"github.com/aman-4321/CourseVault/pkg/router"
)

// App holds every long-lived dependency. Build it with New and release it
// with Close.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	DB      *database.DB // nil with DB_DRIVER=memory
	Store   repositories.Store
	Tokens  *auth.Tokens
	Revoked denylist.Store

	Auth      *services.AuthService
	Courses   *services.CourseService
	Purchases *services.PurchaseService

	limiter *middleware.RateLimiter
	closers []func(context.Context) error
}

// New connects the configured backends and builds the services.
func New(bootCtx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOpts := logger.Options{Production: cfg.IsProduction(), Level: cfg.LogLevel}
	a := &App{Config: cfg, Log: logger.Setup(logOpts)}

	if err := a.connectStore(bootCtx, logOpts); err != nil {
		a.Close(context.Background())
		return nil, err
	}
	if err := a.connectDenylist(bootCtx); err != nil {
		a.Close(context.Background())
		return nil, err
	}

	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		a.Log.Warn("signing secrets not set; affected realms answer 500", "missing", missing)
	}
	a.Tokens = auth.NewTokens(cfg.UserJWTSecret, cfg.AdminJWTSecret, cfg.TokenTTL)

	a.Auth = services.NewAuthService(a.Store.Users, a.Store.Admins, a.Tokens, a.Revoked)
	a.Courses = services.NewCourseService(a.Store.Courses, a.Store.Admins)
	a.Purchases = services.NewPurchaseService(a.Store.Users, a.Store.Courses, a.Store.Purchases)

	if cfg.RateLimit > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	ctx.SetMaxBodyBytes(cfg.MaxBodyBytes)

	return a, nil
}

func (a *App) connectStore(bootCtx context.Context, logOpts logger.Options) error {
	if a.Config.DBDriver == config.DriverMemory {
		a.Log.Warn("using in-memory store; data is lost on exit")
		a.Store = repositories.NewMemoryStore()
		return nil
	}

	db, err := database.Connect(bootCtx, a.Config.MongoURL, a.Config.MongoDatabase)
	if err != nil {
		return err
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	if err := db.EnsureIndexes(bootCtx); err != nil {
		return err
	}
	a.Store = repositories.NewMongoStore(db)

	if a.Config.LogMongo {
		sink := logger.NewMongoHandler(db.Collection(database.Logs), slog.LevelInfo)
		logOpts.Extra = []slog.Handler{sink}
		a.Log = logger.Setup(logOpts)
		// Runs before db.Close because closers unwind in reverse.
		a.closers = append(a.closers, func(context.Context) error {
			sink.Close()
			return nil
		})
	}

	a.Log.Info("mongo connected", "database", a.Config.MongoDatabase)
	return nil
}

func (a *App) connectDenylist(bootCtx context.Context) error {
	if a.Config.RedisAddr == "" {
		a.Revoked = denylist.NewMemory()
		return nil
	}

	rdb, err := denylist.Connect(bootCtx, a.Config.RedisAddr, a.Config.RedisPassword)
	if err != nil {
		return err
	}
	a.Revoked = rdb
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	a.Log.Info("redis connected", "addr", a.Config.RedisAddr)
	return nil
}

// Router builds the kernel router.
func (a *App) Router() *router.Router {
	deps := routes.Deps{
		Auth:      a.Auth,
		Courses:   a.Courses,
		Purchases: a.Purchases,
		Gate:      middleware.NewGate(a.Tokens, a.Revoked),
	}
	if a.limiter != nil {
		deps.AuthLimit = a.limiter.Middleware
	}

	opts := kernel.Options{Log: a.Log, CORSOrigin: a.Config.CORSOrigin, API: deps}
	if a.DB != nil {
		opts.Health = a.DB.Ping
	}
	return kernel.New(opts)
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.Router().Handler()
}

// Close releases backends in reverse order of acquisition.
func (a *App) Close(closeCtx context.Context) error {
	if a.limiter != nil {
		a.limiter.Stop()
		a.limiter = nil
	}
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](closeCtx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("app: close: %w", err)
		}
	}
	a.closers = nil
	return firstErr
}
