package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/album-grid/internal/audio"
	"github.com/handiism/album-grid/internal/bandcamp"
	"github.com/handiism/album-grid/internal/model"
)

var (
	// ErrUnsupportedSource is returned for sources no reader understands.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNoArtwork is returned when a source was read but yielded no cover
	// locators at all.
	ErrNoArtwork = errors.New("source has no artwork")
)

// Stdin is the source name that reads a locator list from standard input.
const Stdin = "-"

// imageExts lists file extensions treated as cover images in directories.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// BandcampReader expands Bandcamp URLs. *bandcamp.Source implements it.
type BandcampReader interface {
	Collection(ctx context.Context, rawURL string) (*model.Collection, error)
}

// Resolver dispatches a source string to the reader that understands it.
//
// Supported sources:
//   - Bandcamp album, track or artist URLs
//   - .json playlist or top-tracks exports
//   - .m3u, .m3u8, .pls, .wpl and .zpl playlists of local audio files
//   - directories of audio files or cover images
//   - any other file, or "-" for stdin, as a list of locators, one per line
//
// Example:
//
//	r := catalog.NewResolver(bandcamp.NewSource(client, dto.Artwork700, 4))
//	c, err := r.Read(ctx, "road-trip.m3u")
type Resolver struct {
	bandcamp BandcampReader
	stdin    io.Reader
}

// NewResolver creates a Resolver. bc may be nil to disable URL sources.
func NewResolver(bc BandcampReader) *Resolver {
	return &Resolver{bandcamp: bc, stdin: os.Stdin}
}

// WithStdin replaces the reader used for the "-" source.
func (r *Resolver) WithStdin(in io.Reader) *Resolver {
	r.stdin = in
	return r
}

// Read resolves source into a Collection.
//
// Returns ErrNoArtwork if the collection has no cover locators, and
// ErrUnsupportedSource for URLs that are not Bandcamp pages.
func (r *Resolver) Read(ctx context.Context, source string) (*model.Collection, error) {
	source = strings.TrimSpace(source)
	c, err := r.read(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(c.Locators()) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoArtwork)
	}
	return c, nil
}

func (r *Resolver) read(ctx context.Context, source string) (*model.Collection, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}
	if source == Stdin {
		return ReadLines(r.stdin, "stdin", "")
	}

	if model.Locator(source).IsRemote() {
		if r.bandcamp == nil || !bandcamp.IsBandcampURL(source) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
		}
		return r.bandcamp.Collection(ctx, source)
	}

	path := source
	if fp, ok := model.Locator(source).FilePath(); ok {
		path = fp
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ReadDir(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Dir(path)

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".json":
		return ReadExport(f, name)
	case isPlaylist(ext):
		format, _ := audio.FormatFromPath(path)
		c, err := audio.NewPlaylistReader(format).Read(f, dir)
		if err != nil {
			return nil, err
		}
		if c.Name == "" {
			c.Name = name
		}
		return c, nil
	default:
		return ReadLines(f, name, dir)
	}
}

func isPlaylist(ext string) bool {
	_, err := audio.FormatFromPath("x" + ext)
	return err == nil
}

// ReadDir lists the audio files and cover images directly inside dir, in
// file name order. Audio tracks take their metadata from ID3 tags when
// those can be read.
func ReadDir(ctx context.Context, dir string) (*model.Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	c := model.NewCollection(filepath.Base(dir))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case audio.IsAudioFile(path):
			track, err := audio.ReadTrack(path)
			if err != nil {
				track = fileTrack(path, len(c.Tracks)+1)
			}
			c.Add(track)
		case imageExts[strings.ToLower(filepath.Ext(path))]:
			c.Add(fileTrack(path, len(c.Tracks)+1))
		}
	}
	return c, nil
}

func fileTrack(path string, number int) *model.Track {
	track := model.NewTrack(nil, number, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), 0)
	track.Path = path
	track.Artwork = model.Locator(path)
	return track
}
