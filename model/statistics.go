package model

// Statistics is the derived view over the full song catalog. It is recomputed
// from the store on every request and never persisted.
type Statistics struct {
	TotalSongs   int `json:"totalSongs"`
	TotalArtists int `json:"totalArtists"`
	TotalAlbums  int `json:"totalAlbums"`
	TotalGenres  int `json:"totalGenres"`

	SongsByGenre  map[string]int `json:"songsByGenre"`
	SongsByArtist map[string]int `json:"songsByArtist"`
	SongsByAlbum  map[string]int `json:"songsByAlbum"`

	// AlbumsByArtist counts distinct albums per artist over (artist, album)
	// pairs exactly as stored. No case folding: albums differing only by case
	// are distinct.
	AlbumsByArtist map[string]int `json:"albumsByArtist"`
}
