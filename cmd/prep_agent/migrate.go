package main

import (
	"fmt"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long:  "Apply pending PostgreSQL migrations. SQLite stores are migrated whenever they are opened.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			if cfg.Store == config.StoreSQLite {
				_, closeStore, err := openStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				closeStore()
				fmt.Fprintf(cmd.OutOrStdout(), "SQLite store ready at %s\n", cfg.SQLitePath)
				return nil
			}

			database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()
			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
