package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"melodex/core/client"
	"melodex/core/stats"
	"melodex/model"
	"melodex/repository"
	"melodex/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) (*httptest.Server, *repository.MemorySongRepository) {
	t.Helper()
	repo := repository.NewMemorySongRepository()
	handler := server.NewSongHandler(repo, stats.NewEngine(repo))
	ts := httptest.NewServer(server.NewRouter(handler))
	t.Cleanup(ts.Close)
	return ts, repo
}

func newOrchestrator(ts *httptest.Server) (*Orchestrator, *Mirror) {
	mirror := NewMirror()
	return NewOrchestrator(client.New(ts.URL), mirror), mirror
}

func waitFor(t *testing.T, cond func(Snapshot) bool, mirror *Mirror) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cond(mirror.Snapshot())
	}, 3*time.Second, 10*time.Millisecond)
}

func idle(s Snapshot, c Concern) bool {
	st := s.Concerns[c]
	return !st.Loading && st.Err == ""
}

func TestLoadSongsPopulatesMirror(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, model.SongInput{Title: "A", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)
	orch.LoadSongs(ctx)

	waitFor(t, func(s Snapshot) bool {
		return len(s.Songs) == 1 && idle(s, ConcernSongs)
	}, mirror)
}

func TestCreateSongPrependsAndRefreshesStatistics(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	existing, err := repo.Insert(ctx, model.SongInput{Title: "Old", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)
	orch.LoadSongs(ctx)
	waitFor(t, func(s Snapshot) bool { return len(s.Songs) == 1 }, mirror)

	orch.CreateSong(ctx, model.SongInput{Title: "New", Artist: "Y", Album: "N", Genre: "Jazz"})

	// the created record is prepended without discarding the rest, and the
	// statistics concern completes its own re-fetch
	waitFor(t, func(s Snapshot) bool {
		return len(s.Songs) == 2 &&
			s.Songs[0].Title == "New" &&
			s.Songs[1].ID == existing.ID &&
			s.Statistics != nil && s.Statistics.TotalSongs == 2 &&
			idle(s, ConcernCreate) && idle(s, ConcernStatistics)
	}, mirror)
}

func TestUpdateSongReplacesInPlace(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	first, err := repo.Insert(ctx, model.SongInput{Title: "First", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, model.SongInput{Title: "Second", Artist: "Y", Album: "N", Genre: "Jazz"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)
	orch.LoadSongs(ctx)
	waitFor(t, func(s Snapshot) bool { return len(s.Songs) == 2 }, mirror)

	orch.UpdateSong(ctx, first.ID, model.SongInput{Title: "Renamed", Artist: "X", Album: "M", Genre: "Rock"})

	waitFor(t, func(s Snapshot) bool {
		// position preserved: first was the older insert, listed second
		return len(s.Songs) == 2 &&
			s.Songs[1].ID == first.ID &&
			s.Songs[1].Title == "Renamed" &&
			idle(s, ConcernUpdate)
	}, mirror)
}

func TestDeleteSongRemovesByID(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	doomed, err := repo.Insert(ctx, model.SongInput{Title: "Doomed", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, model.SongInput{Title: "Kept", Artist: "Y", Album: "N", Genre: "Jazz"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)
	orch.LoadSongs(ctx)
	waitFor(t, func(s Snapshot) bool { return len(s.Songs) == 2 }, mirror)

	orch.DeleteSong(ctx, doomed.ID)

	waitFor(t, func(s Snapshot) bool {
		return len(s.Songs) == 1 &&
			s.Songs[0].Title == "Kept" &&
			s.Statistics != nil && s.Statistics.TotalSongs == 1 &&
			idle(s, ConcernDelete)
	}, mirror)
}

func TestFailurePreservesMirrorData(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, model.SongInput{Title: "A", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)
	orch.LoadSongs(ctx)
	orch.LoadStatistics(ctx)
	waitFor(t, func(s Snapshot) bool { return len(s.Songs) == 1 && s.Statistics != nil }, mirror)
	before := mirror.Snapshot()

	// empty title is rejected by the server with VALIDATION_ERROR
	orch.CreateSong(ctx, model.SongInput{Title: "  ", Artist: "X", Album: "M", Genre: "Rock"})

	waitFor(t, func(s Snapshot) bool {
		st := s.Concerns[ConcernCreate]
		return !st.Loading && st.Err != ""
	}, mirror)

	after := mirror.Snapshot()
	assert.Contains(t, after.Concerns[ConcernCreate].Err, "VALIDATION_ERROR")
	assert.Equal(t, len(before.Songs), len(after.Songs))
	assert.Equal(t, before.Statistics.TotalSongs, after.Statistics.TotalSongs)
}

func TestGenreFilterDrivesSongsQuery(t *testing.T) {
	ts, repo := newCatalogServer(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, model.SongInput{Title: "R1", Artist: "X", Album: "M", Genre: "Rock"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, model.SongInput{Title: "J1", Artist: "Y", Album: "N", Genre: "Jazz"})
	require.NoError(t, err)

	orch, mirror := newOrchestrator(ts)

	orch.SetGenreFilter(ctx, "rock")
	waitFor(t, func(s Snapshot) bool {
		return s.GenreFilter == "rock" && len(s.Songs) == 1 && s.Songs[0].Title == "R1"
	}, mirror)

	orch.ClearGenreFilter(ctx)
	waitFor(t, func(s Snapshot) bool {
		return s.GenreFilter == "" && len(s.Songs) == 2
	}, mirror)
}

// A slow first response must not overwrite the result of a newer request for
// the same concern.
func TestLatestRequestWins(t *testing.T) {
	slowSongs := []*model.Song{{ID: model.NewID(), Title: "stale"}}
	fastSongs := []*model.Song{{ID: model.NewID(), Title: "fresh"}}

	var calls int64
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		songs := fastSongs
		if n == 1 {
			time.Sleep(200 * time.Millisecond)
			songs = slowSongs
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    songs,
		})
	}))
	t.Cleanup(stub.Close)

	mirror := NewMirror()
	orch := NewOrchestrator(client.New(stub.URL), mirror)
	ctx := context.Background()

	orch.LoadSongs(ctx)
	time.Sleep(20 * time.Millisecond) // let the slow request get in flight
	orch.LoadSongs(ctx)

	waitFor(t, func(s Snapshot) bool {
		return len(s.Songs) == 1 && s.Songs[0].Title == "fresh" && idle(s, ConcernSongs)
	}, mirror)

	// the stale completion arrives afterwards and must be discarded
	time.Sleep(300 * time.Millisecond)
	final := mirror.Snapshot()
	require.Len(t, final.Songs, 1)
	assert.Equal(t, "fresh", final.Songs[0].Title)
	assert.True(t, idle(final, ConcernSongs))
}
