package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"melodex/model"
)

// MemorySongRepository is a mutex-guarded in-memory SongRepository. It backs
// the test suite and the server's --memory mode, where no MySQL instance is
// available.
type MemorySongRepository struct {
	mu    sync.RWMutex
	songs map[string]*model.Song
	order []string // ids, newest first

	failErr error
}

// NewMemorySongRepository creates an empty in-memory song repository.
func NewMemorySongRepository() *MemorySongRepository {
	return &MemorySongRepository{songs: make(map[string]*model.Song)}
}

// FailWith makes every subsequent operation return err, simulating an
// unavailable storage medium. Pass nil to restore normal behavior.
func (r *MemorySongRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *MemorySongRepository) Insert(ctx context.Context, input model.SongInput) (*model.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	now := time.Now()
	song := &model.Song{
		ID:        model.NewID(),
		Title:     input.Title,
		Artist:    input.Artist,
		Album:     input.Album,
		Genre:     input.Genre,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.songs[song.ID] = song
	r.order = append([]string{song.ID}, r.order...)

	out := *song
	return &out, nil
}

func (r *MemorySongRepository) FindAll(ctx context.Context) ([]*model.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	songs := make([]*model.Song, 0, len(r.order))
	for _, id := range r.order {
		out := *r.songs[id]
		songs = append(songs, &out)
	}
	return songs, nil
}

func (r *MemorySongRepository) FindByID(ctx context.Context, id string) (*model.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	song, ok := r.songs[id]
	if !ok {
		return nil, nil
	}
	out := *song
	return &out, nil
}

func (r *MemorySongRepository) Replace(ctx context.Context, id string, input model.SongInput) (*model.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	song, ok := r.songs[id]
	if !ok {
		return nil, nil
	}
	song.Title = input.Title
	song.Artist = input.Artist
	song.Album = input.Album
	song.Genre = input.Genre
	song.UpdatedAt = time.Now()

	out := *song
	return &out, nil
}

func (r *MemorySongRepository) Remove(ctx context.Context, id string) (*model.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	song, ok := r.songs[id]
	if !ok {
		return nil, nil
	}
	delete(r.songs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	out := *song
	return &out, nil
}

func (r *MemorySongRepository) FindByGenre(ctx context.Context, genre string) ([]*model.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failErr != nil {
		return nil, r.failErr
	}

	needle := strings.ToLower(genre)
	songs := make([]*model.Song, 0)
	for _, id := range r.order {
		song := r.songs[id]
		if strings.Contains(strings.ToLower(song.Genre), needle) {
			out := *song
			songs = append(songs, &out)
		}
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].Title < songs[j].Title })
	return songs, nil
}
