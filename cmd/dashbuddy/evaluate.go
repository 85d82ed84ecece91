package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [offer-file]",
	Short: "Score one offer with the configured strategy",
	Long:  `Reads an offer document as JSON from a file (or stdin) and prints the strategy's verdict.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		strategy, err := dashbuddy.StrategyFromConfig(cfg.Evaluator)
		if err != nil {
			return err
		}

		raw, err := readInput(args)
		if err != nil {
			return err
		}
		var offer domain.Offer
		if err := json.Unmarshal(raw, &offer); err != nil {
			return fmt.Errorf("decode offer: %w", err)
		}

		v := strategy.Evaluate(offer)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
