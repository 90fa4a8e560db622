package bandcamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/handiism/album-grid/internal/bandcamp/dto"
	"github.com/handiism/album-grid/internal/model"
)

var (
	// ErrNoRelease is returned when a page lists no album or track.
	ErrNoRelease = errors.New("no release found on page")

	// ErrNoAlbumData is returned when a release page carries no data-tralbum
	// attribute.
	ErrNoAlbumData = errors.New("no album data on page")
)

var (
	// tralbumAttr captures the HTML-escaped JSON object of a release page.
	// Quotes inside the attribute are escaped, so the first `}"` closes it.
	tralbumAttr = regexp.MustCompile(`(?s)data-tralbum="(\{.*?\})"`)

	// urlConcat matches the JavaScript string concatenation some pages
	// embed in the album JSON: url: "http://a.bandcamp.com" + "/album/b",
	urlConcat = regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)

	releaseHref = regexp.MustCompile(`(/(?:album|track)/.+?)(?:"|&quot;)`)
	albumHref   = regexp.MustCompile(`href="(/album/.+?)"`)
)

// ParseRelease reads the album embedded in a Bandcamp album or track page.
// Cover URLs are built at the given CDN size.
//
//	album, err := bandcamp.ParseRelease(page, dto.Artwork700)
//	fmt.Println(album.Artwork()) // https://f4.bcbits.com/img/a0123456789_16.jpg
func ParseRelease(page string, size dto.ArtworkSize) (*model.Album, error) {
	raw, err := tralbumJSON(page)
	if err != nil {
		return nil, err
	}

	var data dto.JSONAlbum
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode album data: %w", err)
	}
	if size == "" {
		size = dto.ArtworkOriginal
	}
	return data.ToAlbum(size), nil
}

// ReleasePaths lists the release paths ("/album/x", "/track/y") linked from
// an artist's /music page, in page order and without repeats.
//
// Artists with a single release get redirected to that album's page; it is
// recognized by its discography block and yields exactly one path.
func ReleasePaths(page string) ([]string, error) {
	if strings.Contains(page, `div id="discography"`) {
		paths := firstUnique(albumHref.FindAllStringSubmatch(page, -1))
		switch len(paths) {
		case 0:
			return nil, ErrNoRelease
		case 1:
			return paths, nil
		default:
			return nil, fmt.Errorf("album page links %d albums, expected one", len(paths))
		}
	}

	paths := firstUnique(releaseHref.FindAllStringSubmatch(page, -1))
	if len(paths) == 0 {
		return nil, ErrNoRelease
	}
	return paths, nil
}

// tralbumJSON returns the unescaped data-tralbum JSON with URL
// concatenations joined.
func tralbumJSON(page string) (string, error) {
	m := tralbumAttr.FindStringSubmatch(page)
	if m == nil {
		return "", ErrNoAlbumData
	}
	return joinURLConcat(html.UnescapeString(m[1])), nil
}

func joinURLConcat(s string) string {
	return urlConcat.ReplaceAllString(s, "${1}${2}")
}

// firstUnique returns the first capture group of each match, keeping the
// order of first occurrence.
func firstUnique(matches [][]string) []string {
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if len(m) < 2 || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	return out
}
