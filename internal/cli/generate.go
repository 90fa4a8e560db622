package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/album-grid/internal/cache"
	"github.com/handiism/album-grid/internal/config"
	"github.com/handiism/album-grid/internal/generate"
)

// generateFlags holds the flags of the generate command.
type generateFlags struct {
	pattern   string
	dedupe    bool
	output    string
	cellSize  int
	maxCovers int
	colorKey  string
	policy    string
	workers   int
	noCache   bool
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate SOURCE",
		Short: "Build a cover grid from a source",
		Long: `Build a cover grid from a source and save it as PNG or JPEG.

SOURCE may be a Bandcamp album, track or artist URL, a playlist (.m3u, .m3u8,
.pls, .wpl, .zpl), a playlist export (.json), a directory of images or audio
files, a text file with one image path or URL per line, or "-" for stdin.`,
		Example: `  # Grid of an artist's discography
  album-grid generate https://artist.bandcamp.com

  # Spiral grid of a playlist, duplicates removed
  album-grid generate road-trip.m3u --pattern spiral --dedupe

  # Covers listed on stdin, written as JPEG
  cat covers.txt | album-grid generate - -o covers.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			settings := *settingsFromContext(ctx)
			flags.apply(cmd, &settings)
			if err := settings.Validate(); err != nil {
				return err
			}

			manager := generate.NewManager(&settings, progressLogger(logger))
			defer manager.Close()

			p := newProgress(logger)
			if err := manager.Initialize(ctx, args[0]); err != nil {
				return err
			}
			result, err := manager.Generate(ctx)
			if err != nil {
				return err
			}

			path := flags.output
			if path == "" {
				path = manager.OutputPath(result)
			}
			if err := manager.Save(ctx, result, path); err != nil {
				return err
			}

			p.done(fmt.Sprintf("Built %dx%d grid (%d covers, %d failed)", result.Dimension, result.Dimension, result.Placed, result.Failed))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "layout pattern: normal, diagonal, checkered, spiral")
	cmd.Flags().BoolVarP(&flags.dedupe, "dedupe", "d", false, "remove duplicate covers")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default from output_path setting)")
	cmd.Flags().IntVar(&flags.cellSize, "cell-size", 0, "cell side length in pixels")
	cmd.Flags().IntVar(&flags.maxCovers, "max-covers", 0, "maximum number of covers to consider")
	cmd.Flags().StringVar(&flags.colorKey, "color-key", "", "color key method: average, dominant, kmeans")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "dimension policy: post-fetch, pre-fetch")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent cover fetches")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artwork cache")

	return cmd
}

// apply copies explicitly set flags onto settings.
func (f *generateFlags) apply(cmd *cobra.Command, s *config.Settings) {
	changed := cmd.Flags().Changed
	if changed("pattern") {
		s.Pattern = f.pattern
	}
	if changed("dedupe") {
		s.RemoveDuplicates = f.dedupe
	}
	if changed("cell-size") {
		s.CellSize = f.cellSize
	}
	if changed("max-covers") {
		s.MaxCovers = f.maxCovers
	}
	if changed("color-key") {
		s.ColorKey = f.colorKey
	}
	if changed("policy") {
		s.DimensionPolicy = f.policy
	}
	if changed("workers") {
		s.MaxConcurrentFetches = f.workers
	}
	if f.noCache {
		s.CacheBackend = cache.BackendNone
	}
}
