package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/handiism/album-grid/internal/bandcamp/dto"
	"github.com/handiism/album-grid/internal/cache"
	"github.com/handiism/album-grid/internal/collage"
	"github.com/handiism/album-grid/internal/model"
)

// ErrUnknownFormat is returned for settings files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown settings format")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "ALBUMGRID_"

// Settings holds all configuration options.
type Settings struct {
	// Grid settings
	Pattern          string `json:"pattern" toml:"pattern" yaml:"pattern"`
	RemoveDuplicates bool   `json:"remove_duplicates" toml:"remove_duplicates" yaml:"remove_duplicates"`
	MaxCovers        int    `json:"max_covers" toml:"max_covers" yaml:"max_covers"`
	CellSize         int    `json:"cell_size" toml:"cell_size" yaml:"cell_size"`
	ColorKey         string `json:"color_key" toml:"color_key" yaml:"color_key"`
	DimensionPolicy  string `json:"dimension_policy" toml:"dimension_policy" yaml:"dimension_policy"`

	// Fetch settings
	MaxConcurrentFetches int    `json:"max_concurrent_fetches" toml:"max_concurrent_fetches" yaml:"max_concurrent_fetches"`
	FetchTimeout         int    `json:"fetch_timeout" toml:"fetch_timeout" yaml:"fetch_timeout"` // seconds
	UserAgent            string `json:"user_agent" toml:"user_agent" yaml:"user_agent"`
	ArtworkSize          string `json:"artwork_size" toml:"artwork_size" yaml:"artwork_size"` // 350, 700, 1200, original

	// Cache settings
	CacheBackend  string `json:"cache_backend" toml:"cache_backend" yaml:"cache_backend"` // file, redis, none
	CacheDir      string `json:"cache_dir" toml:"cache_dir" yaml:"cache_dir"`
	CacheTTL      int    `json:"cache_ttl" toml:"cache_ttl" yaml:"cache_ttl"` // hours, 0 = forever
	RedisAddr     string `json:"redis_addr" toml:"redis_addr" yaml:"redis_addr"`
	RedisDB       int    `json:"redis_db" toml:"redis_db" yaml:"redis_db"`
	RedisPassword string `json:"redis_password" toml:"redis_password" yaml:"redis_password"`

	// Output settings
	OutputPath  string `json:"output_path" toml:"output_path" yaml:"output_path"`
	JPEGQuality int    `json:"jpeg_quality" toml:"jpeg_quality" yaml:"jpeg_quality"`

	// Server settings
	ServerAddr string `json:"server_addr" toml:"server_addr" yaml:"server_addr"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Pattern:          collage.PatternRowMajor.String(),
		RemoveDuplicates: false,
		MaxCovers:        collage.MaxCovers,
		CellSize:         collage.DefaultCellSize,
		ColorKey:         collage.KeyAverage.String(),
		DimensionPolicy:  collage.PolicyPostFetch.String(),

		MaxConcurrentFetches: 8,
		FetchTimeout:         30,
		UserAgent:            "AlbumGrid",
		ArtworkSize:          "700",

		CacheBackend: cache.BackendFile,
		CacheDir:     DefaultCacheDir(),
		CacheTTL:     7 * 24,
		RedisAddr:    "localhost:6379",

		OutputPath:  model.DefaultPathFormat,
		JPEGQuality: 90,

		ServerAddr: ":8080",
	}
}

// DefaultCacheDir returns ~/.cache/album-grid, or a temp directory when the
// user cache directory is unknown.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "album-grid")
	}
	return filepath.Join(os.TempDir(), "album-grid")
}

// Load reads settings from a JSON, TOML or YAML file, chosen by extension.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, settings)
	case ".toml":
		err = toml.Unmarshal(data, settings)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, settings)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings using the format implied by the file extension.
func (s *Settings) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		data = buf.Bytes()
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from ALBUMGRID_* environment variables, e.g.
// ALBUMGRID_PATTERN=spiral or ALBUMGRID_CACHE_BACKEND=redis. Malformed
// numbers and booleans are reported and leave the setting unchanged.
func (s *Settings) ApplyEnv() error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("PATTERN", &s.Pattern)
	flag("REMOVE_DUPLICATES", &s.RemoveDuplicates)
	num("MAX_COVERS", &s.MaxCovers)
	num("CELL_SIZE", &s.CellSize)
	str("COLOR_KEY", &s.ColorKey)
	str("DIMENSION_POLICY", &s.DimensionPolicy)
	num("MAX_CONCURRENT_FETCHES", &s.MaxConcurrentFetches)
	num("FETCH_TIMEOUT", &s.FetchTimeout)
	str("USER_AGENT", &s.UserAgent)
	str("ARTWORK_SIZE", &s.ArtworkSize)
	str("CACHE_BACKEND", &s.CacheBackend)
	str("CACHE_DIR", &s.CacheDir)
	num("CACHE_TTL", &s.CacheTTL)
	str("REDIS_ADDR", &s.RedisAddr)
	num("REDIS_DB", &s.RedisDB)
	str("REDIS_PASSWORD", &s.RedisPassword)
	str("OUTPUT_PATH", &s.OutputPath)
	num("JPEG_QUALITY", &s.JPEGQuality)
	str("SERVER_ADDR", &s.ServerAddr)

	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := collage.ParsePattern(s.Pattern); err != nil {
		errs = append(errs, err)
	}
	if _, err := collage.ParseKeyMethod(s.ColorKey); err != nil {
		errs = append(errs, err)
	}
	if _, err := collage.ParseDimensionPolicy(s.DimensionPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseArtworkSize(s.ArtworkSize); err != nil {
		errs = append(errs, err)
	}
	if s.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %d", s.CellSize))
	}
	if s.MaxCovers <= 0 || s.MaxCovers > collage.MaxCovers {
		errs = append(errs, fmt.Errorf("max_covers must be between 1 and %d, got %d", collage.MaxCovers, s.MaxCovers))
	}
	if s.MaxConcurrentFetches <= 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_fetches must be positive, got %d", s.MaxConcurrentFetches))
	}
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", s.JPEGQuality))
	}
	return errors.Join(errs...)
}

// ToCollageOptions converts settings to collage options. Unparseable names
// fall back to the defaults; call Validate first to surface them.
func (s *Settings) ToCollageOptions() collage.Options {
	opts := collage.DefaultOptions()
	if p, err := collage.ParsePattern(s.Pattern); err == nil {
		opts.Pattern = p
	}
	if k, err := collage.ParseKeyMethod(s.ColorKey); err == nil {
		opts.KeyMethod = k
	}
	if p, err := collage.ParseDimensionPolicy(s.DimensionPolicy); err == nil {
		opts.Policy = p
	}
	opts.CellSize = s.CellSize
	opts.MaxCovers = s.MaxCovers
	opts.RemoveDuplicates = s.RemoveDuplicates
	return opts
}

// OutputTemplate converts settings to an OutputConfig.
func (s *Settings) OutputTemplate() *model.OutputConfig {
	return &model.OutputConfig{PathFormat: s.OutputPath}
}

// CacheConfig converts settings to a cache configuration.
func (s *Settings) CacheConfig() cache.Config {
	return cache.Config{
		Backend:   s.CacheBackend,
		Dir:       s.CacheDir,
		RedisAddr: s.RedisAddr,
		RedisDB:   s.RedisDB,
		Password:  s.RedisPassword,
	}
}

// CacheLifetime returns the cache TTL as a duration.
func (s *Settings) CacheLifetime() time.Duration {
	if s.CacheTTL <= 0 {
		return 0
	}
	return time.Duration(s.CacheTTL) * time.Hour
}

// Timeout returns the per-request HTTP timeout.
func (s *Settings) Timeout() time.Duration {
	if s.FetchTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.FetchTimeout) * time.Second
}

// BandcampArtworkSize returns the CDN image variant for Bandcamp covers.
func (s *Settings) BandcampArtworkSize() dto.ArtworkSize {
	size, err := parseArtworkSize(s.ArtworkSize)
	if err != nil {
		return dto.Artwork700
	}
	return size
}

func parseArtworkSize(s string) (dto.ArtworkSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "700":
		return dto.Artwork700, nil
	case "350":
		return dto.Artwork350, nil
	case "1200":
		return dto.Artwork1200, nil
	case "original", "0":
		return dto.ArtworkOriginal, nil
	default:
		return dto.Artwork700, fmt.Errorf("artwork_size must be 350, 700, 1200 or original, got %q", s)
	}
}
