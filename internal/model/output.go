package model

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OutputConfig holds the output file template for generated grids.
//
// PathFormat supports placeholders that are replaced with actual values:
//   - {name} - Collection name (playlist, album or "top_tracks")
//   - {size} - Grid dimension in cells
//   - {pattern} - Layout pattern name
//   - {date} - Generation date (YYYY-MM-DD)
//
// Example:
//
//	cfg := &OutputConfig{PathFormat: "/grids/{name}_{size}x{size}_{pattern}.png"}
//	cfg.Path("Road Trip", 4, "spiral", time.Now())
//	// "/grids/Road_Trip_4x4_spiral.png"
type OutputConfig struct {
	PathFormat string
}

// DefaultPathFormat mirrors the historical file names: name_NxN_pattern.png.
const DefaultPathFormat = "{name}_{size}x{size}_{pattern}.png"

// Path computes the output file path for a grid.
//
// Placeholder values are sanitized individually, so a collection name with
// slashes cannot escape the configured directory. Spaces in the name become
// underscores.
func (c *OutputConfig) Path(name string, size int, pattern string, date time.Time) string {
	format := c.PathFormat
	if format == "" {
		format = DefaultPathFormat
	}
	if name == "" {
		name = "grid"
	}

	path := format
	path = strings.ReplaceAll(path, "{name}", strings.ReplaceAll(sanitizeFileName(name), " ", "_"))
	path = strings.ReplaceAll(path, "{size}", strconv.Itoa(size))
	path = strings.ReplaceAll(path, "{pattern}", sanitizeFileName(pattern))
	path = strings.ReplaceAll(path, "{date}", date.Format("2006-01-02"))

	// Limit total path length for Windows compatibility
	if len(path) >= 260 {
		ext := filepath.Ext(path)
		path = path[:259-len(ext)] + ext
	}

	return path
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	whitespace   = regexp.MustCompile(`\s+`)
)
