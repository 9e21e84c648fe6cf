// Package main provides the entry point for the interview coach API server and tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	sqlitePath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "prep_agent",
		Short: "Interview coach progress service",
		Long: "Records interview practice events (voice analysis, coding rounds, resume matches, feedback) " +
			"and aggregates them into per-user progress summaries over a REST API.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "",
		"use the SQLite store at this path instead of the configured store")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSummaryCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newTokenCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
