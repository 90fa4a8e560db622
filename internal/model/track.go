package model

// Track is one record produced by a catalog reader.
//
// Only the cover reference matters to grid generation; the remaining fields
// are carried for logging and for naming output files.
type Track struct {
	// Album is a reference to the parent album. May be nil.
	Album *Album

	// Number is the track number (1-indexed, 0 if unknown).
	Number int

	// Title is the track title.
	Title string

	// Artist is the track artist. Falls back to the album artist when empty.
	Artist string

	// Duration is the track length in seconds.
	Duration float64

	// Path is the local audio file, when the track came from a local playlist.
	Path string

	// Artwork overrides the album cover for this track.
	Artwork Locator
}

// NewTrack creates a new Track that belongs to album.
func NewTrack(album *Album, number int, title string, duration float64) *Track {
	return &Track{
		Album:    album,
		Number:   number,
		Title:    title,
		Duration: duration,
	}
}

// Cover returns the locator of this track's cover image.
//
// The track's own artwork wins over the album artwork. An empty Locator
// means the record has no cover and must be skipped.
func (t *Track) Cover() Locator {
	if !t.Artwork.IsZero() {
		return t.Artwork
	}
	return t.Album.Artwork()
}

// ArtistName returns the track artist, or the album artist when unset.
func (t *Track) ArtistName() string {
	if t.Artist != "" {
		return t.Artist
	}
	if t.Album != nil {
		return t.Album.Artist
	}
	return ""
}
