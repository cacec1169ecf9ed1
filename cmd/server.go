package cmd

import (
	"melodex/server"

	"github.com/spf13/cobra"
)

var useMemoryStore bool

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the song catalog HTTP server",
	Long:  `Start the Melodex HTTP server, serving the song catalog API and statistics endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(useMemoryStore)
	},
}

func init() {
	serverCmd.Flags().BoolVar(&useMemoryStore, "memory", false, "use the in-memory song store instead of MySQL")
	rootCmd.AddCommand(serverCmd)
}
