package cmd

import (
	"fmt"
	"os"

	"melodex/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "melodex",
	Short: "Melodex is a music catalog service.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(false)
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
