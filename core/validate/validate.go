package validate

import (
	"fmt"
	"strings"

	"melodex/model"
)

// Field length bounds for a song payload.
const (
	MaxTitleLen  = 200
	MaxArtistLen = 100
	MaxAlbumLen  = 200
	MaxGenreLen  = 50
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every field violation found in a payload.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Song checks a candidate payload and returns the normalized (trimmed) input,
// or an Error listing every offending field. Violations are collected across
// all fields, not reported one at a time. Create and update share these rules:
// the complete field set is required on every write.
func Song(in model.SongInput) (model.SongInput, *Error) {
	norm := model.SongInput{
		Title:  strings.TrimSpace(in.Title),
		Artist: strings.TrimSpace(in.Artist),
		Album:  strings.TrimSpace(in.Album),
		Genre:  strings.TrimSpace(in.Genre),
	}

	var errs []FieldError
	check := func(field, value string, max int) {
		if value == "" {
			errs = append(errs, FieldError{Field: field, Message: field + " is required"})
			return
		}
		if len(value) > max {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %d characters", field, max),
			})
		}
	}
	check("title", norm.Title, MaxTitleLen)
	check("artist", norm.Artist, MaxArtistLen)
	check("album", norm.Album, MaxAlbumLen)
	check("genre", norm.Genre, MaxGenreLen)

	if len(errs) > 0 {
		return model.SongInput{}, &Error{Fields: errs}
	}
	return norm, nil
}
