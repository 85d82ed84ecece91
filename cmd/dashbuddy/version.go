package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjtrotter/dashbuddy"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dashbuddy",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dashbuddy version %s\n", dashbuddy.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
