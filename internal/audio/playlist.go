package audio

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/album-grid/internal/model"
)

// ErrUnknownPlaylist is returned for file extensions that are not a
// supported playlist format.
var ErrUnknownPlaylist = errors.New("unknown playlist format")

// PlaylistFormat represents supported playlist file formats.
//
// Each format stores entries differently:
//   - M3U: one path per line, optional #EXTINF metadata
//   - PLS: INI-style FileN/TitleN/LengthN keys
//   - WPL: XML SMIL, Windows Media Player
//   - ZPL: XML SMIL with extra attributes, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U reads .m3u and .m3u8 files.
	FormatM3U PlaylistFormat = iota

	// FormatPLS reads .pls files.
	FormatPLS

	// FormatWPL reads .wpl files.
	FormatWPL

	// FormatZPL reads .zpl files.
	FormatZPL
)

// String returns the file extension of the format without the dot.
func (f PlaylistFormat) String() string {
	switch f {
	case FormatM3U:
		return "m3u"
	case FormatPLS:
		return "pls"
	case FormatWPL:
		return "wpl"
	case FormatZPL:
		return "zpl"
	default:
		return fmt.Sprintf("PlaylistFormat(%d)", int(f))
	}
}

// FormatFromPath picks the playlist format from a file extension.
func FormatFromPath(path string) (PlaylistFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		return FormatM3U, nil
	case ".pls":
		return FormatPLS, nil
	case ".wpl":
		return FormatWPL, nil
	case ".zpl":
		return FormatZPL, nil
	default:
		return FormatM3U, fmt.Errorf("%w: %q", ErrUnknownPlaylist, filepath.Ext(path))
	}
}

// PlaylistReader turns a playlist file into a Collection.
//
// Each entry becomes a Track whose Path is resolved against the playlist's
// directory and whose Artwork locator is that path, so the cover is read
// from the audio file's embedded picture. Remote entries are kept as URLs.
//
// Example:
//
//	f, _ := os.Open("/music/road-trip.m3u")
//	reader := NewPlaylistReader(FormatM3U)
//	c, err := reader.Read(f, "/music")
//	locators := c.Locators()
type PlaylistReader struct {
	format PlaylistFormat
}

// NewPlaylistReader creates a new PlaylistReader for format.
func NewPlaylistReader(format PlaylistFormat) *PlaylistReader {
	return &PlaylistReader{format: format}
}

// Read parses a playlist. baseDir resolves relative entries.
//
// The collection is named after the playlist title when the format has one.
// Entries keep their playlist order.
func (p *PlaylistReader) Read(r io.Reader, baseDir string) (*model.Collection, error) {
	switch p.format {
	case FormatPLS:
		return p.readPLS(r, baseDir)
	case FormatWPL, FormatZPL:
		return p.readSMIL(r, baseDir)
	default:
		return p.readM3U(r, baseDir)
	}
}

// readM3U parses plain and extended M3U.
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	01 Artist - Title.mp3
func (p *PlaylistReader) readM3U(r io.Reader, baseDir string) (*model.Collection, error) {
	c := model.NewCollection("")

	var pending *model.Track
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			pending = parseExtInf(strings.TrimPrefix(line, "#EXTINF:"))
		case strings.HasPrefix(line, "#PLAYLIST:"):
			c.Name = strings.TrimSpace(strings.TrimPrefix(line, "#PLAYLIST:"))
		case strings.HasPrefix(line, "#"):
			continue
		default:
			track := pending
			if track == nil {
				track = model.NewTrack(nil, 0, "", 0)
			}
			pending = nil
			p.addEntry(c, track, line, baseDir)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read m3u: %w", err)
	}
	return c, nil
}

// parseExtInf parses "180,Artist - Title".
func parseExtInf(info string) *model.Track {
	track := model.NewTrack(nil, 0, "", 0)
	seconds, rest, found := strings.Cut(info, ",")
	if !found {
		rest = ""
	}
	if d, err := strconv.ParseFloat(strings.TrimSpace(seconds), 64); err == nil && d > 0 {
		track.Duration = d
	}
	if artist, title, ok := strings.Cut(rest, " - "); ok {
		track.Artist = strings.TrimSpace(artist)
		track.Title = strings.TrimSpace(title)
	} else {
		track.Title = strings.TrimSpace(rest)
	}
	return track
}

// readPLS parses the INI-style PLS format.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistReader) readPLS(r io.Reader, baseDir string) (*model.Collection, error) {
	type entry struct {
		file   string
		title  string
		length float64
	}
	entries := map[int]*entry{}
	get := func(n int) *entry {
		e, ok := entries[n]
		if !ok {
			e = &entry{}
			entries[n] = e
		}
		return e
	}

	maxIndex := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var field string
		for _, prefix := range []string{"file", "title", "length"} {
			if strings.HasPrefix(key, prefix) {
				field = prefix
				break
			}
		}
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(key[len(field):])
		if err != nil || n <= 0 {
			continue
		}
		maxIndex = max(maxIndex, n)

		switch field {
		case "file":
			get(n).file = value
		case "title":
			get(n).title = value
		case "length":
			if d, err := strconv.ParseFloat(value, 64); err == nil && d > 0 {
				get(n).length = d
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pls: %w", err)
	}

	c := model.NewCollection("")
	for n := 1; n <= maxIndex; n++ {
		e, ok := entries[n]
		if !ok || e.file == "" {
			continue
		}
		p.addEntry(c, model.NewTrack(nil, n, e.title, e.length), e.file, baseDir)
	}
	return c, nil
}

// smil mirrors the WPL/ZPL document structure.
type smil struct {
	Title string `xml:"head>title"`
	Media []struct {
		Src         string `xml:"src,attr"`
		AlbumTitle  string `xml:"albumTitle,attr"`
		AlbumArtist string `xml:"albumArtist,attr"`
		TrackTitle  string `xml:"trackTitle,attr"`
		TrackArtist string `xml:"trackArtist,attr"`
		Duration    int64  `xml:"duration,attr"`
	} `xml:"body>seq>media"`
}

// readSMIL parses WPL and ZPL playlists.
func (p *PlaylistReader) readSMIL(r io.Reader, baseDir string) (*model.Collection, error) {
	var doc smil
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("read %s: %w", p.format, err)
	}

	c := model.NewCollection(strings.TrimSpace(doc.Title))
	for i, m := range doc.Media {
		if m.Src == "" {
			continue
		}
		var album *model.Album
		if m.AlbumTitle != "" || m.AlbumArtist != "" {
			album = &model.Album{Artist: m.AlbumArtist, Title: m.AlbumTitle}
		}
		track := model.NewTrack(album, i+1, m.TrackTitle, float64(m.Duration)/1000)
		track.Artist = m.TrackArtist
		p.addEntry(c, track, m.Src, baseDir)
	}
	return c, nil
}

// addEntry resolves src and appends track to c.
func (p *PlaylistReader) addEntry(c *model.Collection, track *model.Track, src, baseDir string) {
	loc := model.Locator(src)
	path := src
	if !loc.IsRemote() {
		if fp, ok := loc.FilePath(); ok {
			path = filepath.FromSlash(strings.ReplaceAll(fp, `\`, "/"))
		}
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
	}
	track.Path = path
	track.Artwork = model.Locator(path)
	if track.Number == 0 {
		track.Number = len(c.Tracks) + 1
	}
	c.Add(track)
}
