package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finbook",
	Short: "Finbook - personal finance ledger backend",
	Long: `Finbook is a personal finance ledger backend.

It records income and outcome events per user behind a small
authenticated REST API.

Run 'finbook serve' to start the server, or 'finbook seed' to load
fixture data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}
