package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/album-grid/internal/cache"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artwork cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			c, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			clearer, ok := c.(cache.Clearer)
			if !ok {
				logger.Info("Cache disabled, nothing to clear")
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			logger.Infof("Removed %d cached covers", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), settingsFromContext(cmd.Context()).CacheDir)
			return nil
		},
	})

	return cmd
}
