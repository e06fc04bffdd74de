// Command server starts the CourseVault API with settings from config/app.json,
// .env and the environment. It is the container entry point; the coursevault
// CLI offers the same server plus maintenance commands.
package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"

	"github.com/aman-4321/CourseVault/config"
	"github.com/aman-4321/CourseVault/internal/app"
	"github.com/aman-4321/CourseVault/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background()) //nolint:errcheck

	return server.Serve(ctx, server.Options{Addr: net.JoinHostPort("", cfg.Port)}, a.Handler(), a.Log)
}
