package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/server"
	"github.com/jonathan/interview-coach/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

// defaultOrigin is the development frontend, allowed when no origins are configured.
const defaultOrigin = "http://localhost:3000"

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing the progress summary, event recording and history endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			jwtConfig, err := config.NewJWTConfig()
			if err != nil {
				return fmt.Errorf("failed to create JWT config: %w", err)
			}

			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			origins := cfg.AllowedOrigins()
			if len(origins) == 0 {
				origins = []string{defaultOrigin}
			}

			srv, err := server.New(server.Options{
				Addr:             cfg.Addr,
				Store:            store,
				Tokens:           server.NewJWTService(jwtConfig).AsTokenValidator(),
				Metrics:          observability.NewMetrics(),
				RateLimit:        ratelimit.LoadConfig(),
				FeedbackLogLimit: cfg.FeedbackLogLimit,
				HistoryLimit:     cfg.HistoryLimit,
				CORSOrigins:      origins,
				Logger:           slog.Default(),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			slog.Info("using event store", "store", cfg.Store)
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PREP_ADDR)")
	return cmd
}
