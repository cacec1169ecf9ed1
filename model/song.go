package model

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"
)

// Song represents one catalog entry in the music library.
type Song struct {
	ID        string    `json:"id" gorm:"type:char(24);primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Artist    string    `json:"artist" gorm:"type:varchar(100);not null"`
	Album     string    `json:"album" gorm:"type:varchar(200);not null"`
	Genre     string    `json:"genre" gorm:"type:varchar(50);not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongInput carries the client-supplied fields for create and update.
// Every write supplies the complete field set; there are no partial updates.
type SongInput struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

var songIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID mints a fresh 24-character hexadecimal song identifier.
func NewID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// IsValidID reports whether id is a syntactically valid song identifier.
// Malformed identifiers are rejected before they ever reach the store.
func IsValidID(id string) bool {
	return songIDPattern.MatchString(id)
}
