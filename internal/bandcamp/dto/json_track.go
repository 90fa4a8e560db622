package dto

import (
	"github.com/handiism/album-grid/internal/model"
)

// JSONTrack is one entry of "trackinfo".
type JSONTrack struct {
	ArtID    *int64  `json:"art_id"`
	Artist   string  `json:"artist"`
	Duration float64 `json:"duration"`
	Number   *int    `json:"track_num"`
	Title    string  `json:"title"`
}

// ToTrack converts the entry to a model.Track. Tracks with their own art id
// get their own cover; the rest fall back to the album's.
func (jt *JSONTrack) ToTrack(album *model.Album, position int, size ArtworkSize) *model.Track {
	number := position
	if jt.Number != nil && *jt.Number > 0 {
		number = *jt.Number
	}

	track := model.NewTrack(album, number, jt.Title, jt.Duration)
	track.Artist = jt.Artist
	if jt.ArtID != nil && *jt.ArtID > 0 {
		track.Artwork = model.Locator(ArtworkURL(*jt.ArtID, size))
	}
	return track
}
