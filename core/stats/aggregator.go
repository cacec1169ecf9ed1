package stats

import (
	"context"
	"fmt"

	"melodex/model"
	"melodex/repository"
)

// Engine computes catalog statistics on demand. Every call scans the live
// record set at invocation time; nothing is cached between calls.
type Engine struct {
	repo repository.SongRepository
}

// NewEngine creates a statistics engine over the given repository.
func NewEngine(repo repository.SongRepository) *Engine {
	return &Engine{repo: repo}
}

// ComputeStatistics derives the full statistics view from the current store
// state.
func (e *Engine) ComputeStatistics(ctx context.Context) (*model.Statistics, error) {
	songs, err := e.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan songs for statistics: %w", err)
	}
	return Compute(songs), nil
}

// Compute folds the song set into the statistics structure in a single pass.
// Grouping is map-based, so the result does not depend on input order. Keys
// are the stored field values as-is; distinct albums per artist are counted
// over (artist, album) pairs with no case folding.
func Compute(songs []*model.Song) *model.Statistics {
	st := &model.Statistics{
		SongsByGenre:   make(map[string]int),
		SongsByArtist:  make(map[string]int),
		SongsByAlbum:   make(map[string]int),
		AlbumsByArtist: make(map[string]int),
	}

	type artistAlbum struct {
		artist string
		album  string
	}
	seenPairs := make(map[artistAlbum]struct{})

	for _, song := range songs {
		st.TotalSongs++
		st.SongsByGenre[song.Genre]++
		st.SongsByArtist[song.Artist]++
		st.SongsByAlbum[song.Album]++

		pair := artistAlbum{artist: song.Artist, album: song.Album}
		if _, ok := seenPairs[pair]; !ok {
			seenPairs[pair] = struct{}{}
			st.AlbumsByArtist[song.Artist]++
		}
	}

	st.TotalArtists = len(st.SongsByArtist)
	st.TotalAlbums = len(st.SongsByAlbum)
	st.TotalGenres = len(st.SongsByGenre)
	return st
}
