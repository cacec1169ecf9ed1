package state

import (
	"sync"

	"melodex/model"
)

// Concern identifies an independently tracked request lifecycle.
type Concern string

const (
	ConcernSongs      Concern = "songs"
	ConcernStatistics Concern = "statistics"
	ConcernCreate     Concern = "create"
	ConcernUpdate     Concern = "update"
	ConcernDelete     Concern = "delete"
)

// ConcernState is the transient request status of one concern.
type ConcernState struct {
	Loading bool
	Err     string
}

// Snapshot is a point-in-time copy of the mirror, safe to read without locks.
type Snapshot struct {
	Songs       []*model.Song
	Statistics  *model.Statistics
	GenreFilter string
	Concerns    map[Concern]ConcernState
	Version     uint64
}

// Mirror is the client-resident reflection of server state: the song list,
// the last-fetched statistics, and the active genre filter. It is mutated
// only through its transition methods; presentation code reads snapshots.
// Each transition bumps the version so readers can detect change.
type Mirror struct {
	mu          sync.RWMutex
	songs       []*model.Song
	statistics  *model.Statistics
	genreFilter string
	concerns    map[Concern]ConcernState
	version     uint64
}

// NewMirror creates an empty mirror with all concerns idle.
func NewMirror() *Mirror {
	return &Mirror{concerns: make(map[Concern]ConcernState)}
}

// BeginRequest marks a concern as loading and clears its previous error.
func (m *Mirror) BeginRequest(c Concern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.concerns[c] = ConcernState{Loading: true}
	m.version++
}

// FailRequest ends a concern's request with an error message. Existing song
// and statistics data stays untouched.
func (m *Mirror) FailRequest(c Concern, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.concerns[c] = ConcernState{Err: msg}
	m.version++
}

// SetSongs replaces the song list from a query response and completes the
// songs concern.
func (m *Mirror) SetSongs(songs []*model.Song) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs = songs
	m.concerns[ConcernSongs] = ConcernState{}
	m.version++
}

// SetStatistics replaces the statistics snapshot and completes the statistics
// concern.
func (m *Mirror) SetStatistics(st *model.Statistics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statistics = st
	m.concerns[ConcernStatistics] = ConcernState{}
	m.version++
}

// ApplyCreate prepends the created song and completes the create concern.
func (m *Mirror) ApplyCreate(song *model.Song) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs = append([]*model.Song{song}, m.songs...)
	m.concerns[ConcernCreate] = ConcernState{}
	m.version++
}

// ApplyUpdate replaces the matching song in place and completes the update
// concern. An id no longer present is a no-op apart from completion.
func (m *Mirror) ApplyUpdate(song *model.Song) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.songs {
		if s.ID == song.ID {
			m.songs[i] = song
			break
		}
	}
	m.concerns[ConcernUpdate] = ConcernState{}
	m.version++
}

// ApplyDelete removes the matching song by id and completes the delete
// concern.
func (m *Mirror) ApplyDelete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.songs {
		if s.ID == id {
			m.songs = append(m.songs[:i], m.songs[i+1:]...)
			break
		}
	}
	m.concerns[ConcernDelete] = ConcernState{}
	m.version++
}

// SetGenreFilter records the active genre filter; empty means unfiltered.
func (m *Mirror) SetGenreFilter(genre string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genreFilter = genre
	m.version++
}

// GenreFilter returns the active genre filter.
func (m *Mirror) GenreFilter() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.genreFilter
}

// Snapshot returns a copy of the mirror state.
func (m *Mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	songs := make([]*model.Song, len(m.songs))
	copy(songs, m.songs)

	concerns := make(map[Concern]ConcernState, len(m.concerns))
	for c, st := range m.concerns {
		concerns[c] = st
	}

	return Snapshot{
		Songs:       songs,
		Statistics:  m.statistics,
		GenreFilter: m.genreFilter,
		Concerns:    concerns,
		Version:     m.version,
	}
}
