package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy"
	"github.com/sjtrotter/dashbuddy/internal/observability"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/host"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/httpapi"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/memory"
	redisstore "github.com/sjtrotter/dashbuddy/pkg/adapters/redis"
	"github.com/sjtrotter/dashbuddy/pkg/adapters/sqlite"
	"github.com/sjtrotter/dashbuddy/pkg/ports"
	"github.com/sjtrotter/dashbuddy/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [capture-file]",
	Short: "Run the session pipeline over a capture stream",
	Long:  `Reads newline-delimited JSON trees from a capture file (or stdin), classifies them, steps the session state machine, and records events. With --serve, also exposes the debug HTTP surface.`,
	Args:  cobra.MaximumNArgs(1),
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

		events, err := sqlite.Open(cfg.Runner.SQLitePath)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer events.Close()

		var store ports.StateStore
		if cfg.Runner.Redis.Addr != "" {
			client := backend.NewClient(&backend.Options{Addr: cfg.Runner.Redis.Addr})
			defer client.Close()
			store = redisstore.NewStore(client, cfg.Runner.Redis.Prefix)
		} else {
			store = memory.NewStore()
		}

		input := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			input = f
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serve, _ := cmd.Flags().GetBool("serve"); serve {
			handler := httpapi.NewHandler(app.Registry(), app.Strategy(), reg, logger)
			srv := &http.Server{Addr: cfg.Runner.HTTPAddr, Handler: handler}
			go func() {
				logger.Info("debug server listening", "addr", cfg.Runner.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("debug server failed", "err", err)
				}
			}()
			defer srv.Shutdown(context.Background())
		}

		r := runner.New(runner.Options{
			Classifier: app.Registry(),
			Machine:    app.Machine(),
			Executor:   host.New(events, nil, logger),
			Store:      store,
			Slot:       cfg.Runner.Slot,
			Metrics:    metrics,
			Logger:     logger,
		})

		err = r.Run(ctx, runner.JSONLSource{R: input, Logger: logger})
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("serve", false, "Also expose the debug HTTP surface while running")
}
