package bandcamp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/album-grid/internal/bandcamp/dto"
	"github.com/handiism/album-grid/internal/model"
	"golang.org/x/sync/errgroup"
)

// PageGetter fetches the HTML of a page.
type PageGetter interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Source turns Bandcamp album, track and artist URLs into collections.
//
// An album or track URL yields that release's tracks. Any other URL on a
// Bandcamp host is treated as an artist and expands to every release listed
// on its /music page, in page order.
//
// Example usage:
//
//	src := NewSource(http.NewClient(), dto.Artwork700, 4)
//	c, err := src.Collection(ctx, "https://artist.bandcamp.com")
type Source struct {
	client      PageGetter
	size        dto.ArtworkSize
	concurrency int
	onWarning   func(string)
}

// NewSource creates a Source. concurrency bounds parallel album page
// requests when expanding an artist; values below 1 mean 1.
func NewSource(client PageGetter, size dto.ArtworkSize, concurrency int) *Source {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Source{
		client:      client,
		size:        size,
		concurrency: concurrency,
	}
}

// OnWarning registers a callback for releases that were skipped. It may be
// called from several goroutines at once.
func (s *Source) OnWarning(fn func(string)) {
	s.onWarning = fn
}

// IsReleaseURL reports whether u points at a single album or track page.
func IsReleaseURL(u *url.URL) bool {
	return strings.Contains(u.Path, "/album/") || strings.Contains(u.Path, "/track/")
}

// IsBandcampURL reports whether raw is an http(s) URL on a bandcamp.com host
// or any host serving a release path.
func IsBandcampURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "bandcamp.com" || strings.HasSuffix(host, ".bandcamp.com") || IsReleaseURL(u)
}

// Collection reads every release reachable from rawURL.
//
// Returns ErrNoRelease if the artist page lists nothing, and an error
// joining every failure if no release could be read.
func (s *Source) Collection(ctx context.Context, rawURL string) (*model.Collection, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	releaseURLs, err := s.releaseURLs(ctx, u)
	if err != nil {
		return nil, err
	}

	albums := make([]*model.Album, len(releaseURLs))
	errs := make([]error, len(releaseURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, releaseURL := range releaseURLs {
		g.Go(func() error {
			album, err := s.Album(gctx, releaseURL)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", releaseURL, err)
				s.warn(errs[i].Error())
				return nil
			}
			albums[i] = album
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := model.NewCollection("")
	for _, album := range albums {
		if album == nil {
			continue
		}
		if c.Name == "" {
			c.Name = collectionName(album, len(releaseURLs))
		}
		c.AddAlbum(album)
	}
	if len(c.Tracks) == 0 {
		if joined := errors.Join(errs...); joined != nil {
			return nil, joined
		}
		return nil, ErrNoRelease
	}
	return c, nil
}

// Album fetches and parses one album or track page.
func (s *Source) Album(ctx context.Context, albumURL string) (*model.Album, error) {
	html, err := s.client.GetString(ctx, albumURL)
	if err != nil {
		return nil, err
	}
	return ParseRelease(html, s.size)
}

func (s *Source) releaseURLs(ctx context.Context, u *url.URL) ([]string, error) {
	if IsReleaseURL(u) {
		return []string{u.String()}, nil
	}

	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	musicURL := fmt.Sprintf("%s://%s/music", u.Scheme, u.Host)
	html, err := s.client.GetString(ctx, musicURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", musicURL, err)
	}

	relative, err := ReleasePaths(html)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(relative))
	for _, rel := range relative {
		ref, err := url.Parse(rel)
		if err != nil {
			continue
		}
		urls = append(urls, base.ResolveReference(ref).String())
	}
	return urls, nil
}

func (s *Source) warn(msg string) {
	if s.onWarning != nil {
		s.onWarning(msg)
	}
}

// collectionName names a single release after its title and a discography
// after its artist.
func collectionName(album *model.Album, releases int) string {
	if releases == 1 && album.Title != "" {
		return album.Title
	}
	return album.Artist
}
