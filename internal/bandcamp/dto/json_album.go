package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/handiism/album-grid/internal/model"
)

const artworkURLStart = "https://f4.bcbits.com/img/a"

// ArtworkSize is the image variant suffix served by the Bandcamp CDN.
type ArtworkSize string

const (
	// ArtworkOriginal is the uploaded file, often several thousand pixels wide.
	ArtworkOriginal ArtworkSize = "0"
	// Artwork1200 is 1200x1200.
	Artwork1200 ArtworkSize = "10"
	// Artwork700 is 700x700.
	Artwork700 ArtworkSize = "16"
	// Artwork350 is 350x350.
	Artwork350 ArtworkSize = "2"
)

// ArtworkURL builds the CDN URL of an art id at the given size.
func ArtworkURL(artID int64, size ArtworkSize) string {
	if size == "" {
		size = ArtworkOriginal
	}
	return fmt.Sprintf("%s%010d_%s.jpg", artworkURLStart, artID, size)
}

// BandcampTime handles Bandcamp's date format "01 Jan 2023 00:00:00 GMT".
type BandcampTime struct {
	time.Time
}

// UnmarshalJSON parses the Bandcamp date formats, accepting an empty string
// as the zero time.
func (bt *BandcampTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		bt.Time = time.Time{}
		return nil
	}

	formats := []string{
		"02 Jan 2006 15:04:05 MST", // "01 Jan 2023 00:00:00 GMT"
		"2 Jan 2006 15:04:05 MST",  // "1 Jan 2023 00:00:00 GMT"
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			bt.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse date: %s", s)
}

// JSONAlbum is the data-tralbum payload of an album or track page.
type JSONAlbum struct {
	AlbumData   *JSONAlbumData `json:"current"`
	ArtID       *int64         `json:"art_id"`
	Artist      string         `json:"artist"`
	ReleaseDate *BandcampTime  `json:"album_release_date"`
	Tracks      []JSONTrack    `json:"trackinfo"`
}

// JSONAlbumData holds the "current" object.
type JSONAlbumData struct {
	AlbumTitle  string        `json:"title"`
	ReleaseDate *BandcampTime `json:"release_date"`
	PublishDate *BandcampTime `json:"publish_date"`
}

// ToAlbum converts the payload to a model.Album. Every listed track is kept
// whether or not it is streamable, since only its cover matters.
func (ja *JSONAlbum) ToAlbum(size ArtworkSize) *model.Album {
	var artworkURL string
	if ja.ArtID != nil && *ja.ArtID > 0 {
		artworkURL = ArtworkURL(*ja.ArtID, size)
	}

	var releaseDate time.Time
	switch {
	case ja.ReleaseDate != nil:
		releaseDate = ja.ReleaseDate.Time
	case ja.AlbumData != nil && ja.AlbumData.ReleaseDate != nil:
		releaseDate = ja.AlbumData.ReleaseDate.Time
	case ja.AlbumData != nil && ja.AlbumData.PublishDate != nil:
		releaseDate = ja.AlbumData.PublishDate.Time
	}

	title := ""
	if ja.AlbumData != nil {
		title = ja.AlbumData.AlbumTitle
	}

	album := model.NewAlbum(ja.Artist, title, artworkURL, releaseDate)
	for i, jt := range ja.Tracks {
		album.Tracks = append(album.Tracks, jt.ToTrack(album, i+1, size))
	}

	return album
}
