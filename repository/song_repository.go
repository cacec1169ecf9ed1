package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"melodex/db"
	"melodex/model"
)

// SongRepository defines the interface for song data operations.
type SongRepository interface {
	Insert(ctx context.Context, input model.SongInput) (*model.Song, error)
	FindAll(ctx context.Context) ([]*model.Song, error)
	FindByID(ctx context.Context, id string) (*model.Song, error)
	Replace(ctx context.Context, id string, input model.SongInput) (*model.Song, error)
	Remove(ctx context.Context, id string) (*model.Song, error)
	FindByGenre(ctx context.Context, genre string) ([]*model.Song, error)
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	DB *sql.DB
}

// NewMySQLSongRepository creates a new instance of mysqlSongRepository.
func NewMySQLSongRepository() SongRepository {
	return &mysqlSongRepository{DB: db.DB}
}

// Insert adds a new song to the database. The repository assigns the
// identifier and both timestamps; createdAt equals updatedAt on insert.
func (r *mysqlSongRepository) Insert(ctx context.Context, input model.SongInput) (*model.Song, error) {
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

	query := `INSERT INTO songs (id, title, artist, album, genre, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, song.ID, song.Title, song.Artist, song.Album, song.Genre, song.CreatedAt, song.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Insert for song %q: %w", song.Title, err)
	}
	return song, nil
}

// FindAll retrieves all songs, most recently created first. An empty catalog
// yields an empty slice, not an error.
func (r *mysqlSongRepository) FindAll(ctx context.Context) ([]*model.Song, error) {
	query := `SELECT id, title, artist, album, genre, created_at, updated_at
	           FROM songs ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song := &model.Song{}
		err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre, &song.CreatedAt, &song.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song in FindAll: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in FindAll: %w", err)
	}

	return songs, nil
}

// FindByID retrieves a song by its ID. Returns (nil, nil) when absent.
func (r *mysqlSongRepository) FindByID(ctx context.Context, id string) (*model.Song, error) {
	query := `SELECT id, title, artist, album, genre, created_at, updated_at
	           FROM songs WHERE id = ?`
	row := r.DB.QueryRowContext(ctx, query, id)

	song := &model.Song{}
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre, &song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to scan song by ID %s: %w", id, err)
	}
	return song, nil
}

// Replace overwrites the four text fields of an existing song and refreshes
// updatedAt, leaving createdAt untouched. Returns (nil, nil) when absent.
func (r *mysqlSongRepository) Replace(ctx context.Context, id string, input model.SongInput) (*model.Song, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	now := time.Now()
	query := `UPDATE songs SET title = ?, artist = ?, album = ?, genre = ?, updated_at = ? WHERE id = ?`
	_, err = r.DB.ExecContext(ctx, query, input.Title, input.Artist, input.Album, input.Genre, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Replace for song %s: %w", id, err)
	}

	existing.Title = input.Title
	existing.Artist = input.Artist
	existing.Album = input.Album
	existing.Genre = input.Genre
	existing.UpdatedAt = now
	return existing, nil
}

// Remove deletes a song and returns the removed record. Returns (nil, nil)
// when absent. The delete is hard; there is no tombstone.
func (r *mysqlSongRepository) Remove(ctx context.Context, id string) (*model.Song, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	_, err = r.DB.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Remove for song %s: %w", id, err)
	}
	return existing, nil
}

// FindByGenre retrieves songs whose genre contains the given value,
// case-insensitively, ordered by title.
func (r *mysqlSongRepository) FindByGenre(ctx context.Context, genre string) ([]*model.Song, error) {
	query := `SELECT id, title, artist, album, genre, created_at, updated_at
	           FROM songs WHERE LOWER(genre) LIKE CONCAT('%', LOWER(?), '%') ORDER BY title ASC`
	rows, err := r.DB.QueryContext(ctx, query, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs by genre %q: %w", genre, err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song := &model.Song{}
		err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre, &song.CreatedAt, &song.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song in FindByGenre: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in FindByGenre: %w", err)
	}

	return songs, nil
}
