package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/handiism/album-grid/internal/config"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version set with SetVersion.
func Version() string {
	return version
}

// NewRootCommand builds the album-grid command tree.
//
// Before any subcommand runs, the root command loads a .env file when
// present, attaches a logger (debug level with --verbose) to the command
// context, and loads settings from --config with ALBUMGRID_* overrides.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "album-grid",
		Short: "Build color-sorted cover grids from albums and playlists",
		Long: `album-grid collects the cover art of a Bandcamp release, an artist
discography, a playlist or a list of images, sorts the covers by hue and lays
them out on a square grid.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			ctx := withLogger(cmd.Context(), logger)

			settings, err := loadSettings(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(ctx, settingsKey, settings))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("album-grid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (.json, .toml or .yaml)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root
}

// loadSettings reads path (or the defaults when empty) and applies the
// environment.
func loadSettings(path string) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path != "" {
		// An explicit path must exist; only the implicit defaults may be missing.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		var err error
		if settings, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}
	return settings, nil
}

// settingsFromContext returns the settings loaded by the root command.
func settingsFromContext(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey).(*config.Settings); ok {
		return s
	}
	return config.DefaultSettings()
}
