package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"melodex/core/stats"
	"melodex/core/validate"
	"melodex/logger"
	"melodex/model"
	"melodex/repository"

	"github.com/gorilla/mux"
)

// SongHandler handles the song catalog API requests.
type SongHandler struct {
	songRepo repository.SongRepository
	engine   *stats.Engine
}

// NewSongHandler creates a new SongHandler.
func NewSongHandler(songRepo repository.SongRepository, engine *stats.Engine) *SongHandler {
	return &SongHandler{songRepo: songRepo, engine: engine}
}

// internalError logs the full cause for operators and reports a generic
// failure to the caller.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.Error(msg,
		logger.ErrorField(err),
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
	)
	respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error", nil)
}

func decodeSongInput(w http.ResponseWriter, r *http.Request) (model.SongInput, bool) {
	var input model.SongInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "Invalid JSON request body", nil)
		return model.SongInput{}, false
	}
	return input, true
}

// GetSongsHandler returns all songs, most recently created first.
func (h *SongHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songRepo.FindAll(r.Context())
	if err != nil {
		internalError(w, r, "Failed to retrieve songs", err)
		return
	}

	message := "Songs retrieved successfully"
	if len(songs) == 0 {
		message = "No songs in the catalog yet"
	}
	respondList(w, http.StatusOK, songs, len(songs), message)
}

// CreateSongHandler validates the payload and inserts a new song.
func (h *SongHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeSongInput(w, r)
	if !ok {
		return
	}

	normalized, verr := validate.Song(input)
	if verr != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", verr.Fields)
		return
	}

	song, err := h.songRepo.Insert(r.Context(), normalized)
	if err != nil {
		internalError(w, r, "Failed to create song", err)
		return
	}

	logger.Info("Song created",
		logger.String("songId", song.ID),
		logger.String("title", song.Title),
	)
	respondSuccess(w, http.StatusCreated, song, "Song created successfully")
}

// UpdateSongHandler replaces the text fields of an existing song.
func (h *SongHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !model.IsValidID(id) {
		respondError(w, http.StatusBadRequest, CodeInvalidID, "Invalid song ID format", nil)
		return
	}

	input, ok := decodeSongInput(w, r)
	if !ok {
		return
	}

	normalized, verr := validate.Song(input)
	if verr != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", verr.Fields)
		return
	}

	song, err := h.songRepo.Replace(r.Context(), id, normalized)
	if err != nil {
		internalError(w, r, "Failed to update song", err)
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, CodeSongNotFound, "Song not found", nil)
		return
	}

	logger.Info("Song updated", logger.String("songId", song.ID))
	respondSuccess(w, http.StatusOK, song, "Song updated successfully")
}

// DeleteSongHandler removes a song and returns the deleted record.
func (h *SongHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !model.IsValidID(id) {
		respondError(w, http.StatusBadRequest, CodeInvalidID, "Invalid song ID format", nil)
		return
	}

	song, err := h.songRepo.Remove(r.Context(), id)
	if err != nil {
		internalError(w, r, "Failed to delete song", err)
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, CodeSongNotFound, "Song not found", nil)
		return
	}

	logger.Info("Song deleted", logger.String("songId", song.ID))
	respondSuccess(w, http.StatusOK, song, "Song deleted successfully")
}

// FilterSongsHandler returns songs whose genre matches the query parameter.
func (h *SongHandler) FilterSongsHandler(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "Genre query parameter is required", nil)
		return
	}

	songs, err := h.songRepo.FindByGenre(r.Context(), genre)
	if err != nil {
		internalError(w, r, "Failed to filter songs by genre", err)
		return
	}

	respondList(w, http.StatusOK, songs, len(songs),
		fmt.Sprintf("Found %d songs matching genre %q", len(songs), genre))
}

// StatisticsHandler computes and returns catalog statistics.
func (h *SongHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	statistics, err := h.engine.ComputeStatistics(r.Context())
	if err != nil {
		internalError(w, r, "Failed to compute statistics", err)
		return
	}

	respondSuccess(w, http.StatusOK, statistics, "Statistics computed successfully")
}
