package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-grid/internal/model"
)

// ErrNoPicture is returned when an audio file carries no embedded picture.
var ErrNoPicture = errors.New("no embedded picture")

// audioExts lists the extensions read through ID3 tags.
var audioExts = map[string]bool{
	".mp3": true,
}

// IsAudioFile reports whether path has an extension read by this package.
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// Picture is an image embedded in an audio file.
type Picture struct {
	MimeType string
	Data     []byte
}

// ReadPicture returns the cover embedded in the ID3 tag of an MP3 file.
//
// The front cover (APIC type 3) is preferred; otherwise the first attached
// picture is returned.
//
// Example:
//
//	pic, err := ReadPicture("/music/01 Song.mp3")
//	if errors.Is(err, ErrNoPicture) {
//	    // skip this track
//	}
func ReadPicture(path string) (*Picture, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}
	defer tag.Close()

	var first *Picture
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		p := &Picture{MimeType: pic.MimeType, Data: pic.Picture}
		if pic.PictureType == id3v2.PTFrontCover {
			return p, nil
		}
		if first == nil {
			first = p
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPicture)
	}
	return first, nil
}

// ReadTrack builds a Track from the ID3 tags of an MP3 file. The track's
// Artwork locator is the file itself.
func ReadTrack(path string) (*model.Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}
	defer tag.Close()

	var album *model.Album
	if tag.Album() != "" {
		album = &model.Album{Title: tag.Album(), Artist: albumArtist(tag)}
	}

	title := tag.Title()
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	track := model.NewTrack(album, trackNumber(tag), title, 0)
	track.Artist = tag.Artist()
	track.Path = path
	track.Artwork = model.Locator(path)
	return track, nil
}

func albumArtist(tag *id3v2.Tag) string {
	if tf := tag.GetTextFrame("TPE2"); tf.Text != "" {
		return tf.Text
	}
	return tag.Artist()
}

// trackNumber parses TRCK, which may be "3" or "3/12".
func trackNumber(tag *id3v2.Tag) int {
	raw := tag.GetTextFrame("TRCK").Text
	num, _, _ := strings.Cut(raw, "/")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0
	}
	return n
}
