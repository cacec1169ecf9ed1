package validate

import (
	"strings"
	"testing"

	"melodex/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongTrimsAllFields(t *testing.T) {
	norm, verr := Song(model.SongInput{
		Title:  "  Karma Police  ",
		Artist: "\tRadiohead\n",
		Album:  " OK Computer ",
		Genre:  " Alternative Rock ",
	})
	require.Nil(t, verr)
	assert.Equal(t, "Karma Police", norm.Title)
	assert.Equal(t, "Radiohead", norm.Artist)
	assert.Equal(t, "OK Computer", norm.Album)
	assert.Equal(t, "Alternative Rock", norm.Genre)
}

func TestSongCollectsEveryViolation(t *testing.T) {
	_, verr := Song(model.SongInput{
		Title:  "   ",
		Artist: "",
		Album:  " ",
		Genre:  "",
	})
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 4)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "artist", "album", "genre"}, fields)
}

func TestSongLengthBounds(t *testing.T) {
	tests := []struct {
		name  string
		input model.SongInput
		field string
	}{
		{
			name: "title over 200",
			input: model.SongInput{
				Title: strings.Repeat("a", MaxTitleLen+1), Artist: "x", Album: "y", Genre: "z",
			},
			field: "title",
		},
		{
			name: "artist over 100",
			input: model.SongInput{
				Title: "t", Artist: strings.Repeat("a", MaxArtistLen+1), Album: "y", Genre: "z",
			},
			field: "artist",
		},
		{
			name: "album over 200",
			input: model.SongInput{
				Title: "t", Artist: "x", Album: strings.Repeat("a", MaxAlbumLen+1), Genre: "z",
			},
			field: "album",
		},
		{
			name: "genre over 50",
			input: model.SongInput{
				Title: "t", Artist: "x", Album: "y", Genre: strings.Repeat("a", MaxGenreLen+1),
			},
			field: "genre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verr := Song(tt.input)
			require.NotNil(t, verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Contains(t, verr.Fields[0].Message, "at most")
		})
	}
}

func TestSongValueAtBoundPasses(t *testing.T) {
	norm, verr := Song(model.SongInput{
		Title:  strings.Repeat("a", MaxTitleLen),
		Artist: strings.Repeat("b", MaxArtistLen),
		Album:  strings.Repeat("c", MaxAlbumLen),
		Genre:  strings.Repeat("d", MaxGenreLen),
	})
	require.Nil(t, verr)
	assert.Len(t, norm.Title, MaxTitleLen)
}

func TestErrorMessageListsFields(t *testing.T) {
	_, verr := Song(model.SongInput{Artist: "x", Album: "y", Genre: "z"})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "title")
}
