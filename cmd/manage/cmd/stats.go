package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/db"
	"github.com/templui/homerender/internal/repository"
)

func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the schema version and the number of stored users and renderings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				version, err := db.Version(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}

				users, err := repository.NewUserRepository(database).Count()
				if err != nil {
					return fmt.Errorf("failed to count users: %w", err)
				}

				renderings, err := repository.NewRenderingRepository(database).Count()
				if err != nil {
					return fmt.Errorf("failed to count renderings: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\nusers: %d\nrenderings: %d\n", version, users, renderings)
				return nil
			})
		},
	}
}
