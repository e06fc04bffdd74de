package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aman-4321/CourseVault/config"
	"github.com/aman-4321/CourseVault/database/seeders"
	"github.com/aman-4321/CourseVault/internal/app"
	"github.com/aman-4321/CourseVault/pkg/database"
)

// coursevault db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes the API relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DBDriver != config.DriverMongo {
			return fmt.Errorf("db:index needs DB_DRIVER=mongo, got %q", cfg.DBDriver)
		}

		db, err := database.Connect(cmd.Context(), cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer db.Close(context.Background()) //nolint:errcheck

		for _, spec := range database.Indexes() {
			fmt.Printf("  • %s: %d index(es)\n", spec.Collection, len(spec.Models))
		}
		return db.EnsureIndexes(cmd.Context())
	},
}

var seedPasswordFlag string

// coursevault seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo admin and a few courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close(context.Background()) //nolint:errcheck

		fmt.Println("Running seeders…")
		return seeders.RunAll(cmd.Context(), seeders.Deps{
			Auth:          a.Auth,
			Courses:       a.Courses,
			AdminPassword: seedPasswordFlag,
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPasswordFlag, "admin-password", "changeme123", "password for the demo admin")
}
