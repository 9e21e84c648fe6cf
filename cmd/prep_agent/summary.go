package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/progress"
	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's progress summary as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			svc := progress.NewService(store, progress.WithFeedbackLimit(cfg.FeedbackLogLimit))
			summary, err := svc.Summary(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to get progress summary: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user ID (UUID)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
