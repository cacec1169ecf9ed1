package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"melodex/core/client"
	"melodex/model"

	"github.com/spf13/cobra"
)

var seedURL string

var seedSongs = []model.SongInput{
	{Title: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer", Genre: "Alternative Rock"},
	{Title: "Karma Police", Artist: "Radiohead", Album: "OK Computer", Genre: "Alternative Rock"},
	{Title: "Everything In Its Right Place", Artist: "Radiohead", Album: "Kid A", Genre: "Electronic"},
	{Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"},
	{Title: "Blue in Green", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"},
	{Title: "Nude", Artist: "Radiohead", Album: "In Rainbows", Genre: "Alternative Rock"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a batch of sample songs through the API",
	Run: func(cmd *cobra.Command, args []string) {
		api := client.New(seedURL)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, input := range seedSongs {
			song, err := api.Create(ctx, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "seed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("created %s  %s - %s\n", song.ID, song.Artist, song.Title)
		}
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedURL, "url", "http://localhost:8080", "base URL of a running melodex server")
	rootCmd.AddCommand(seedCmd)
}
