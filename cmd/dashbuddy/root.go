package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy/internal/config"
	"github.com/sjtrotter/dashbuddy/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dashbuddy",
	Short: "DashBuddy watches driver app screens and tracks dash sessions",
	Long:  `DashBuddy classifies captured UI trees from the driver app, scores offers, and maintains a persistent session timeline with an event log.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file")
}

// loadConfig resolves the effective configuration for a command invocation.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.Log.Level))
}
