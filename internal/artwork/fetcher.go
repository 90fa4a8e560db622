package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/handiism/album-grid/internal/audio"
	"github.com/handiism/album-grid/internal/cache"
	ioutils "github.com/handiism/album-grid/internal/io"
	"github.com/handiism/album-grid/internal/model"
)

// Getter downloads the body of a URL. *http.Client implements it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetcher resolves a cover locator to a decoded image.
//
// Remote locators go through the cache and then the HTTP client. Local MP3
// files yield their embedded picture. Any other path is read from disk.
// No fetch is ever retried; the caller drops items that fail.
//
// Example usage:
//
//	f := artwork.NewFetcher(http.NewClient(), cache.NewNullCache(), 0)
//	img, err := f.Fetch(ctx, "https://f4.bcbits.com/img/a0123456789_16.jpg")
type Fetcher struct {
	client Getter
	cache  cache.Cache
	ttl    time.Duration
	images *ioutils.ImageService

	onCacheError func(error)
}

// NewFetcher creates a Fetcher. A nil cache disables caching. ttl is the
// lifetime of cached covers; 0 keeps them forever.
func NewFetcher(client Getter, c cache.Cache, ttl time.Duration) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		client: client,
		cache:  c,
		ttl:    ttl,
		images: ioutils.NewImageService(0),
	}
}

// OnCacheError registers a callback for cache backend failures. Fetches
// still succeed without the cache. It may be called from several goroutines
// at once.
func (f *Fetcher) OnCacheError(fn func(error)) {
	f.onCacheError = fn
}

// Fetch returns the decoded image behind loc.
func (f *Fetcher) Fetch(ctx context.Context, loc model.Locator) (image.Image, error) {
	data, err := f.Bytes(ctx, loc)
	if err != nil {
		return nil, err
	}
	img, _, err := f.images.Decode(ctx, data)
	if err != nil {
		if loc.IsRemote() {
			f.forget(ctx, cache.ArtworkKey(loc.String()))
		}
		return nil, err
	}
	return img, nil
}

// Bytes returns the raw encoded image behind loc.
func (f *Fetcher) Bytes(ctx context.Context, loc model.Locator) ([]byte, error) {
	if loc.IsZero() {
		return nil, fmt.Errorf("empty locator")
	}
	if loc.IsRemote() {
		return f.remote(ctx, loc.String())
	}

	path, ok := loc.FilePath()
	if !ok {
		return nil, fmt.Errorf("unsupported locator %q", loc)
	}
	if audio.IsAudioFile(path) {
		pic, err := audio.ReadPicture(path)
		if err != nil {
			return nil, err
		}
		return pic.Data, nil
	}
	return ioutils.ReadFile(ctx, path)
}

// remote serves url from the cache or downloads it. Only bodies that look
// like an image are stored; a cached entry that does not is dropped and
// downloaded again.
func (f *Fetcher) remote(ctx context.Context, url string) ([]byte, error) {
	key := cache.ArtworkKey(url)
	data, ok, err := f.cache.Get(ctx, key)
	switch {
	case err != nil:
		f.cacheError(fmt.Errorf("read %s: %w", url, err))
	case ok && isImage(data):
		return data, nil
	case ok:
		f.forget(ctx, key)
	}

	if f.client == nil {
		return nil, fmt.Errorf("no http client for %s", url)
	}
	data, err = f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if isImage(data) {
		if err := f.cache.Set(ctx, key, data, f.ttl); err != nil {
			f.cacheError(fmt.Errorf("store %s: %w", url, err))
		}
	}
	return data, nil
}

func (f *Fetcher) forget(ctx context.Context, key string) {
	if err := f.cache.Delete(ctx, key); err != nil {
		f.cacheError(fmt.Errorf("drop %s: %w", key, err))
	}
}

func (f *Fetcher) cacheError(err error) {
	if f.onCacheError != nil {
		f.onCacheError(err)
	}
}

// isImage reports whether data starts with a known image header.
func isImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
