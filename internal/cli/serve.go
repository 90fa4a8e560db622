package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/handiism/album-grid/internal/cache"
	"github.com/handiism/album-grid/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grids over HTTP",
		Long: `Starts an HTTP server that renders grids on request.

  GET /healthcheck
  GET /grid?source=URL&pattern=spiral&dedupe=true&cell_size=100&format=png`,
		Example: `  # Start server on the configured address (default :8080)
  album-grid serve

  # Start server on a custom address
  album-grid serve --addr 127.0.0.1:3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			settings := settingsFromContext(ctx)
			if err := settings.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				settings.ServerAddr = addr
			}

			c, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			return server.New(settings, c, logger).ListenAndServe(ctx, settings.ServerAddr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}

// openCache opens the configured cache. An unreachable backend degrades to
// no caching; an unknown backend name is an error.
func openCache(cmd *cobra.Command) (cache.Cache, error) {
	ctx := cmd.Context()
	settings := settingsFromContext(ctx)

	c, err := cache.New(ctx, settings.CacheConfig())
	if err == nil {
		return c, nil
	}
	if errors.Is(err, cache.ErrUnknownBackend) {
		return nil, err
	}
	loggerFromContext(ctx).Warn("Cache unavailable, continuing without", "backend", settings.CacheBackend, "err", err)
	return cache.NewNullCache(), nil
}
