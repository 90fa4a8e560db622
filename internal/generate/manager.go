package generate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/album-grid/internal/artwork"
	"github.com/handiism/album-grid/internal/bandcamp"
	"github.com/handiism/album-grid/internal/cache"
	"github.com/handiism/album-grid/internal/catalog"
	"github.com/handiism/album-grid/internal/collage"
	"github.com/handiism/album-grid/internal/config"
	"github.com/handiism/album-grid/internal/http"
	ioutils "github.com/handiism/album-grid/internal/io"
	"github.com/handiism/album-grid/internal/model"
)

// ErrNotInitialized is returned by Generate before a successful Initialize.
var ErrNotInitialized = errors.New("manager not initialized")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a generation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Reader resolves a source string to a collection. *catalog.Resolver
// implements it.
type Reader interface {
	Read(ctx context.Context, source string) (*model.Collection, error)
}

// Fetcher turns a locator into a decoded image. *artwork.Fetcher
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, loc model.Locator) (image.Image, error)
}

// Option customizes a Manager.
type Option func(*Manager)

// WithReader replaces the catalog reader.
func WithReader(r Reader) Option {
	return func(m *Manager) { m.reader = r }
}

// WithFetcher replaces the image fetcher.
func WithFetcher(f Fetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithCache makes the default fetcher use c. The caller keeps ownership of c.
func WithCache(c cache.Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// Manager coordinates one grid: read the source, fetch covers, assemble.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	reader     Reader
	fetcher    Fetcher
	cache      cache.Cache
	ownsCache  bool
	images     *ioutils.ImageService
	workers    int

	collection *model.Collection
	plan       *collage.Plan
	fetched    int32
	failed     int32
	total      int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new Manager. A nil settings selects the defaults;
// fewer than one concurrent fetch means one.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	workers := max(settings.MaxConcurrentFetches, 1)

	m := &Manager{
		settings: settings,
		httpClient: http.NewClient(
			http.WithTimeout(settings.Timeout()),
			http.WithUserAgent(settings.UserAgent),
		),
		images:     ioutils.NewImageService(settings.JPEGQuality),
		workers:    workers,
		onProgress: onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.reader == nil {
		source := bandcamp.NewSource(m.httpClient, settings.BandcampArtworkSize(), workers)
		source.OnWarning(func(msg string) {
			m.progress(ProgressEvent{Message: msg, Level: LevelWarning})
		})
		m.reader = catalog.NewResolver(source)
	}
	return m
}

// Initialize reads the source and selects the covers to fetch.
func (m *Manager) Initialize(ctx context.Context, source string) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Reading %s", source), Level: LevelVerbose})

	collection, err := m.reader.Read(ctx, source)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", source, err), Level: LevelError})
		return err
	}

	locators := collection.Locators()
	plan, err := collage.Prepare(locators, m.settings.ToCollageOptions())
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error preparing %s: %v", collection.Name, err), Level: LevelError})
		return err
	}

	if err := m.ensureFetcher(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.collection = collection
	m.plan = plan
	m.mu.Unlock()
	atomic.StoreInt32(&m.fetched, 0)
	atomic.StoreInt32(&m.failed, 0)
	atomic.StoreInt32(&m.total, int32(len(plan.Locators)))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d covers in %s", len(locators), collection.Name), Level: LevelInfo})
	if plan.Duplicates > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Removed %d duplicate covers", plan.Duplicates), Level: LevelVerbose})
	}
	if dropped := len(locators) - plan.Duplicates - plan.Requested; dropped > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Using the first %d covers, %d skipped", plan.Requested, dropped), Level: LevelWarning})
	}
	return nil
}

// Generate fetches every planned cover and assembles the grid.
//
// Covers that fail to fetch or decode are reported as warnings and left out.
// Returns collage.ErrDegenerateGrid when nothing usable was fetched.
func (m *Manager) Generate(ctx context.Context) (*collage.Result, error) {
	m.mu.RLock()
	plan := m.plan
	m.mu.RUnlock()
	if plan == nil {
		return nil, ErrNotInitialized
	}

	opts := plan.Options()
	slots := make([]*collage.Tile, len(plan.Locators))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for i, loc := range plan.Locators {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := m.fetcher.Fetch(gctx, loc)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				atomic.AddInt32(&m.failed, 1)
				fe := &collage.FetchError{Locator: loc, Err: err}
				m.progress(ProgressEvent{Message: fe.Error(), Level: LevelWarning})
				return nil // Continue with other covers
			}
			tile := collage.NewTile(i, loc, img, opts.KeyMethod, opts.CellSize)
			slots[i] = &tile
			atomic.AddInt32(&m.fetched, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Fetched: %s", loc), Level: LevelVerbose})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tiles := make([]collage.Tile, 0, len(slots))
	for _, t := range slots {
		if t != nil {
			tiles = append(tiles, *t)
		}
	}

	result, err := plan.Assemble(tiles)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not build a grid: %v", err), Level: LevelError})
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Built %dx%d %s grid from %d covers (%d failed)",
			result.Dimension, result.Dimension, result.Pattern, result.Placed, result.Failed),
		Level: LevelSuccess,
	})
	return result, nil
}

// Save encodes result to path. The format follows the extension.
func (m *Manager) Save(ctx context.Context, result *collage.Result, path string) error {
	if err := m.images.Save(ctx, path, result.Image()); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving %s: %v", path, err), Level: LevelError})
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", path), Level: LevelSuccess})
	return nil
}

// OutputPath returns the configured output path for result.
func (m *Manager) OutputPath(result *collage.Result) string {
	name := ""
	if c := m.Collection(); c != nil {
		name = c.Name
	}
	return m.settings.OutputTemplate().Path(name, result.Dimension, result.Pattern.String(), time.Now())
}

// Collection returns the collection read by Initialize.
func (m *Manager) Collection() *model.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collection
}

// GetProgress returns the current fetch progress.
func (m *Manager) GetProgress() (fetched, failed, total int32) {
	return atomic.LoadInt32(&m.fetched), atomic.LoadInt32(&m.failed), atomic.LoadInt32(&m.total)
}

// Close releases the cache opened by the manager.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ownsCache && m.cache != nil {
		err := m.cache.Close()
		m.cache = nil
		m.ownsCache = false
		return err
	}
	return nil
}

func (m *Manager) ensureFetcher(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetcher != nil {
		return nil
	}

	if m.cache == nil {
		c, err := cache.New(ctx, m.settings.CacheConfig())
		if err != nil {
			if errors.Is(err, cache.ErrUnknownBackend) {
				return err
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cache unavailable, continuing without: %v", err), Level: LevelWarning})
			c = cache.NewNullCache()
		}
		m.cache = c
		m.ownsCache = true
	}

	fetcher := artwork.NewFetcher(m.httpClient, m.cache, m.settings.CacheLifetime())
	fetcher.OnCacheError(func(err error) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cache: %v", err), Level: LevelVerbose})
	})
	m.fetcher = fetcher
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
