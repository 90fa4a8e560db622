// Package config provides configuration management for album-grid.
//
// This package handles:
//   - Loading and saving settings from JSON, TOML or YAML files
//   - Default configuration values
//   - ALBUMGRID_* environment overrides
//   - Conversion to collage options, output templates and cache config
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Row-major 100px cells, at most 300 covers
//	// 8 concurrent fetches, file cache in ~/.cache/album-grid
//	// Output to {name}_{size}x{size}_{pattern}.png
//
// # Loading from File
//
// The decoder is picked from the extension (.json, .toml, .yaml, .yml):
//
//	settings, err := config.Load("/path/to/album-grid.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// ApplyEnv overrides any setting from the environment:
//
//	ALBUMGRID_PATTERN=spiral
//	ALBUMGRID_CACHE_BACKEND=redis
//	ALBUMGRID_REDIS_ADDR=localhost:6379
//
// # Saving Settings
//
//	settings.Pattern = "diagonal"
//	err := settings.Save("/path/to/album-grid.yaml")
package config
