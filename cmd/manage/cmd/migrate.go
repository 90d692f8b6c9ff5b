package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/db"
	"github.com/templui/homerender/internal/logger"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				return db.RunMigrations(cmd.Context(), database.DB, cfg.DBDriver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				return db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether each is applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				statuses, err := db.Status(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied " + s.AppliedAt.Format("2006-01-02 15:04")
					}
					fmt.Fprintf(out, "%05d  %-40s %s\n", s.Version, s.Name, state)
				}
				return nil
			})
		},
	})

	return cmd
}

// withDB loads the server configuration and connects without migrating.
func withDB(fn func(cfg *config.Config, database *sqlx.DB) error) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return fn(cfg, database)
}
