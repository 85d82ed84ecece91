package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// identifyCmd represents the identify command
var identifyCmd = &cobra.Command{
	Use:   "identify [tree-file]",
	Short: "Classify one captured UI tree",
	Long:  `Reads a single JSON tree from a file (or stdin) and prints the classified screen with its extracted payload.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		raw, err := readInput(args)
		if err != nil {
			return err
		}
		root, err := domain.DecodeTree(raw)
		if err != nil {
			return fmt.Errorf("decode tree: %w", err)
		}

		app := dashbuddy.New(dashbuddy.WithLogger(newLogger(cfg)))
		info := app.Identify(root)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}
