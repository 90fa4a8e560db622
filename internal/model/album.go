package model

import "time"

// Album represents a released album and its cover art.
//
// Catalog readers that know about albums (Bandcamp pages, ID3 tags) build an
// Album and attach tracks to it. A track without its own artwork falls back
// to the album's cover.
//
// Example:
//
//	album := NewAlbum("The Beatles", "Abbey Road", artURL, releaseDate)
//	track := NewTrack(album, 1, "Come Together", 259)
//	track.Cover() // == Locator(artURL)
type Album struct {
	// Artist is the album artist name.
	Artist string

	// Title is the album title.
	Title string

	// ArtworkURL is where the album cover can be fetched from.
	// Empty string means no artwork is available.
	ArtworkURL string

	// ReleaseDate is when the album was released.
	ReleaseDate time.Time

	// Tracks contains all tracks in this album.
	Tracks []*Track
}

// NewAlbum creates a new Album.
func NewAlbum(artist, title, artworkURL string, releaseDate time.Time) *Album {
	return &Album{
		Artist:      artist,
		Title:       title,
		ArtworkURL:  artworkURL,
		ReleaseDate: releaseDate,
	}
}

// HasArtwork returns true if the album has cover art available.
func (a *Album) HasArtwork() bool {
	return a != nil && a.ArtworkURL != ""
}

// Artwork returns the album cover as a Locator.
func (a *Album) Artwork() Locator {
	if !a.HasArtwork() {
		return ""
	}
	return Locator(a.ArtworkURL)
}
