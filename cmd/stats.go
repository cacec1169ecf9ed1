package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"melodex/core/client"

	"github.com/spf13/cobra"
)

var statsURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics from a running server",
	Run: func(cmd *cobra.Command, args []string) {
		api := client.New(statsURL)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		st, err := api.Statistics(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stats: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("songs: %d  artists: %d  albums: %d  genres: %d\n",
			st.TotalSongs, st.TotalArtists, st.TotalAlbums, st.TotalGenres)

		genres := make([]string, 0, len(st.SongsByGenre))
		for g := range st.SongsByGenre {
			genres = append(genres, g)
		}
		sort.Strings(genres)
		for _, g := range genres {
			fmt.Printf("  %-24s %d\n", g, st.SongsByGenre[g])
		}
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsURL, "url", "http://localhost:8080", "base URL of a running melodex server")
	rootCmd.AddCommand(statsCmd)
}
