package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy"
	"github.com/sjtrotter/dashbuddy/internal/observability"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/httpapi"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the debug HTTP surface",
	Long:  `Exposes /identify and /evaluate for ad-hoc classification and scoring, plus /healthz and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		strategy, err := dashbuddy.StrategyFromConfig(cfg.Evaluator)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		metrics := observability.New(reg)

		app := dashbuddy.New(
			dashbuddy.WithLogger(logger),
			dashbuddy.WithStrategy(strategy),
			dashbuddy.WithMetrics(metrics),
		)

		handler := httpapi.NewHandler(app.Registry(), app.Strategy(), reg, logger)
		logger.Info("listening", "addr", cfg.Runner.HTTPAddr)
		return http.ListenAndServe(cfg.Runner.HTTPAddr, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
