package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/album-grid/internal/bandcamp/dto"
	"github.com/handiism/album-grid/internal/collage"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}

	opts := s.ToCollageOptions()
	if opts.Pattern != collage.PatternRowMajor {
		t.Errorf("Pattern = %v, want row-major", opts.Pattern)
	}
	if opts.CellSize != 100 || opts.MaxCovers != 300 {
		t.Errorf("CellSize/MaxCovers = %d/%d, want 100/300", opts.CellSize, opts.MaxCovers)
	}
	if opts.RemoveDuplicates {
		t.Error("RemoveDuplicates should default to false")
	}
	if s.CacheLifetime() != 7*24*time.Hour {
		t.Errorf("CacheLifetime = %v", s.CacheLifetime())
	}
	if s.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", s.Timeout())
	}
	if s.BandcampArtworkSize() != dto.Artwork700 {
		t.Errorf("BandcampArtworkSize = %q", s.BandcampArtworkSize())
	}
}

func TestLoadSave(t *testing.T) {
	for _, ext := range []string{".json", ".toml", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "settings"+ext)

			s := DefaultSettings()
			s.Pattern = "spiral"
			s.RemoveDuplicates = true
			s.CellSize = 64
			s.CacheBackend = "redis"
			if err := s.Save(path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if *loaded != *s {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, s)
			}
		})
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("pattern = \"checkered\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Pattern != "checkered" {
		t.Errorf("Pattern = %q, want checkered", s.Pattern)
	}
	if s.CellSize != 100 {
		t.Errorf("CellSize = %d, want default 100", s.CellSize)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || s == nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}

	ini := filepath.Join(dir, "settings.ini")
	os.WriteFile(ini, []byte("x=1"), 0644)
	if _, err := Load(ini); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ALBUMGRID_PATTERN", "diagonal")
	t.Setenv("ALBUMGRID_REMOVE_DUPLICATES", "true")
	t.Setenv("ALBUMGRID_CELL_SIZE", "50")
	t.Setenv("ALBUMGRID_REDIS_ADDR", "cache:6379")

	s := DefaultSettings()
	if err := s.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if s.Pattern != "diagonal" || !s.RemoveDuplicates || s.CellSize != 50 || s.RedisAddr != "cache:6379" {
		t.Errorf("env not applied: %+v", s)
	}

	t.Setenv("ALBUMGRID_MAX_COVERS", "lots")
	s = DefaultSettings()
	if err := s.ApplyEnv(); err == nil {
		t.Error("expected error for malformed number")
	}
	if s.MaxCovers != 300 {
		t.Errorf("MaxCovers = %d, want unchanged 300", s.MaxCovers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"pattern", func(s *Settings) { s.Pattern = "zigzag" }},
		{"color key", func(s *Settings) { s.ColorKey = "median" }},
		{"policy", func(s *Settings) { s.DimensionPolicy = "sometimes" }},
		{"cell size", func(s *Settings) { s.CellSize = 0 }},
		{"max covers", func(s *Settings) { s.MaxCovers = 301 }},
		{"workers", func(s *Settings) { s.MaxConcurrentFetches = 0 }},
		{"jpeg quality", func(s *Settings) { s.JPEGQuality = 101 }},
		{"artwork size", func(s *Settings) { s.ArtworkSize = "42" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestToCollageOptions(t *testing.T) {
	s := DefaultSettings()
	s.Pattern = "checkerboard"
	s.ColorKey = "kmeans"
	s.DimensionPolicy = "pre-fetch"
	s.RemoveDuplicates = true

	opts := s.ToCollageOptions()
	if opts.Pattern != collage.PatternCheckerboard {
		t.Errorf("Pattern = %v", opts.Pattern)
	}
	if opts.KeyMethod != collage.KeyKMeans {
		t.Errorf("KeyMethod = %v", opts.KeyMethod)
	}
	if opts.Policy != collage.PolicyPreFetch {
		t.Errorf("Policy = %v", opts.Policy)
	}
	if !opts.RemoveDuplicates {
		t.Error("RemoveDuplicates not carried over")
	}
}
