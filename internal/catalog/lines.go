package catalog

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/handiism/album-grid/internal/model"
)

// ReadLines reads one locator per line. Blank lines and lines starting
// with '#' are skipped. Relative paths are resolved against baseDir.
func ReadLines(r io.Reader, name, baseDir string) (*model.Collection, error) {
	c := model.NewCollection(name)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		loc := model.Locator(line)
		if !loc.IsRemote() && baseDir != "" {
			if path, ok := loc.FilePath(); ok && !filepath.IsAbs(path) {
				loc = model.Locator(filepath.Join(baseDir, path))
			}
		}

		track := model.NewTrack(nil, len(c.Tracks)+1, "", 0)
		track.Artwork = loc
		c.Add(track)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read locator list: %w", err)
	}
	return c, nil
}
