package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate an event bundle and insert its events",
		Long:  "Validate a JSON event bundle against the embedded schema and write its events to the store. Use --file - to read stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			bundle, err := ingestion.ParseBundle(data)
			if err != nil {
				return err
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

			res, err := ingestion.Import(cmd.Context(), store, bundle)
			if err != nil {
				slog.Error("import stopped", "written", res.Total(), "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %d events for %s (voice %d, coding %d, uploads %d, analyses %d, feedback %d)\n",
				res.Total(), res.UserID, res.VoiceFeedback, res.CodingSubmissions,
				res.ResumeUploads, res.ResumeAnalyses, res.FeedbackRecords)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "bundle JSON file, or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var user, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's events as an importable bundle",
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

			bundle, err := ingestion.Export(cmd.Context(), store, userID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(bundle); err != nil {
				return fmt.Errorf("failed to write bundle: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user ID (UUID)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
