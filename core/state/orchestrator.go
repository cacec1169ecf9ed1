package state

import (
	"context"
	"sync"

	"melodex/core/client"
	"melodex/logger"
	"melodex/model"
)

// Orchestrator maps user intent onto catalog service calls and mirror
// transitions. Every operation is asynchronous; callers observe completion
// through the mirror's concern states.
//
// Per concern, only the most recently issued request is honored: each request
// takes a generation number, and a completion whose generation is no longer
// current is discarded on arrival. The in-flight HTTP request itself is not
// cancelled. Concerns never block one another.
type Orchestrator struct {
	api    *client.Client
	mirror *Mirror

	mu   sync.Mutex
	gens map[Concern]uint64
}

// NewOrchestrator creates an orchestrator driving the given mirror through
// the given catalog client.
func NewOrchestrator(api *client.Client, mirror *Mirror) *Orchestrator {
	return &Orchestrator{
		api:    api,
		mirror: mirror,
		gens:   make(map[Concern]uint64),
	}
}

// begin opens a new request generation for a concern and transitions the
// mirror into its loading state.
func (o *Orchestrator) begin(c Concern) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gens[c]++
	gen := o.gens[c]
	o.mirror.BeginRequest(c)
	return gen
}

// apply runs fn only if gen is still the current generation for the concern.
// The generation check and the mirror transition happen under the same lock,
// so a stale completion can never overwrite a newer one.
func (o *Orchestrator) apply(c Concern, gen uint64, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gens[c] != gen {
		logger.Debug("Discarding stale response", logger.String("concern", string(c)))
		return false
	}
	fn()
	return true
}

// LoadSongs fetches the song list, honoring the active genre filter.
func (o *Orchestrator) LoadSongs(ctx context.Context) {
	gen := o.begin(ConcernSongs)
	genre := o.mirror.GenreFilter()

	go func() {
		var songs []*model.Song
		var err error
		if genre != "" {
			songs, err = o.api.FilterByGenre(ctx, genre)
		} else {
			songs, err = o.api.List(ctx)
		}

		o.apply(ConcernSongs, gen, func() {
			if err != nil {
				o.mirror.FailRequest(ConcernSongs, err.Error())
				return
			}
			o.mirror.SetSongs(songs)
		})
	}()
}

// LoadStatistics fetches a fresh statistics snapshot.
func (o *Orchestrator) LoadStatistics(ctx context.Context) {
	gen := o.begin(ConcernStatistics)

	go func() {
		statistics, err := o.api.Statistics(ctx)

		o.apply(ConcernStatistics, gen, func() {
			if err != nil {
				o.mirror.FailRequest(ConcernStatistics, err.Error())
				return
			}
			o.mirror.SetStatistics(statistics)
		})
	}()
}

// CreateSong submits a new song. On success the created record is prepended
// to the mirror and a statistics refresh is triggered.
func (o *Orchestrator) CreateSong(ctx context.Context, input model.SongInput) {
	gen := o.begin(ConcernCreate)

	go func() {
		song, err := o.api.Create(ctx, input)

		applied := o.apply(ConcernCreate, gen, func() {
			if err != nil {
				o.mirror.FailRequest(ConcernCreate, err.Error())
				return
			}
			o.mirror.ApplyCreate(song)
		})
		if applied && err == nil {
			o.LoadStatistics(ctx)
		}
	}()
}

// UpdateSong replaces a song's fields. On success the matching mirror record
// is swapped in place and a statistics refresh is triggered.
func (o *Orchestrator) UpdateSong(ctx context.Context, id string, input model.SongInput) {
	gen := o.begin(ConcernUpdate)

	go func() {
		song, err := o.api.Update(ctx, id, input)

		applied := o.apply(ConcernUpdate, gen, func() {
			if err != nil {
				o.mirror.FailRequest(ConcernUpdate, err.Error())
				return
			}
			o.mirror.ApplyUpdate(song)
		})
		if applied && err == nil {
			o.LoadStatistics(ctx)
		}
	}()
}

// DeleteSong removes a song. On success the matching mirror record is removed
// and a statistics refresh is triggered.
func (o *Orchestrator) DeleteSong(ctx context.Context, id string) {
	gen := o.begin(ConcernDelete)

	go func() {
		song, err := o.api.Delete(ctx, id)

		applied := o.apply(ConcernDelete, gen, func() {
			if err != nil {
				o.mirror.FailRequest(ConcernDelete, err.Error())
				return
			}
			o.mirror.ApplyDelete(song.ID)
		})
		if applied && err == nil {
			o.LoadStatistics(ctx)
		}
	}()
}

// SetGenreFilter activates a genre filter and reloads the song list through
// the filtered query.
func (o *Orchestrator) SetGenreFilter(ctx context.Context, genre string) {
	o.mirror.SetGenreFilter(genre)
	o.LoadSongs(ctx)
}

// ClearGenreFilter deactivates the filter and reloads the unfiltered list.
func (o *Orchestrator) ClearGenreFilter(ctx context.Context) {
	o.mirror.SetGenreFilter("")
	o.LoadSongs(ctx)
}
