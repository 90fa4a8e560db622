package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/handiism/album-grid/internal/model"
)

// exportFile is a playlist-items or top-tracks export from a streaming
// service API. Playlist items wrap the track ("items[].track"); top tracks
// are the tracks themselves ("items[]").
type exportFile struct {
	Name  string         `json:"name"`
	Items []exportRecord `json:"items"`
}

type exportRecord struct {
	Track *exportTrack `json:"track"`
	exportTrack
}

type exportTrack struct {
	Name       string         `json:"name"`
	DurationMS int64          `json:"duration_ms"`
	TrackNo    int            `json:"track_number"`
	Artists    []exportArtist `json:"artists"`
	Album      *exportAlbum   `json:"album"`
}

type exportAlbum struct {
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Artists     []exportArtist `json:"artists"`
	Images      []exportImage  `json:"images"`
}

type exportArtist struct {
	Name string `json:"name"`
}

type exportImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ReadExport reads a JSON export. Each record's cover is its album's first
// image, the largest one in these exports. Records without an image, and
// null records such as removed tracks, still become tracks but carry no
// locator. The collection is named from the top-level "name", else name.
func ReadExport(r io.Reader, name string) (*model.Collection, error) {
	var doc exportFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	if doc.Name != "" {
		name = doc.Name
	}
	c := model.NewCollection(name)

	for _, rec := range doc.Items {
		t := &rec.exportTrack
		if rec.Track != nil {
			t = rec.Track
		}
		c.Add(t.toTrack(len(c.Tracks) + 1))
	}
	return c, nil
}

func (t *exportTrack) toTrack(position int) *model.Track {
	var album *model.Album
	if t.Album != nil {
		var artworkURL string
		if len(t.Album.Images) > 0 {
			artworkURL = t.Album.Images[0].URL
		}
		album = &model.Album{
			Artist:     firstArtist(t.Album.Artists),
			Title:      t.Album.Name,
			ArtworkURL: artworkURL,
		}
	}

	number := t.TrackNo
	if number <= 0 {
		number = position
	}
	track := model.NewTrack(album, number, t.Name, float64(t.DurationMS)/1000)
	track.Artist = firstArtist(t.Artists)
	return track
}

func firstArtist(artists []exportArtist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}
