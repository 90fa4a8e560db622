// Package cache stores downloaded cover art so repeated grids over the same
// catalog skip the network.
//
// Three backends implement Cache:
//
//	file   sharded JSON entries under a directory (default for the CLI)
//	redis  shared entries in Redis, for several server instances
//	none   NullCache, never stores anything
//
// Keys for cover URLs come from ArtworkKey:
//
//	c, err := cache.New(ctx, cache.Config{Backend: "file", Dir: dir})
//	data, ok, err := c.Get(ctx, cache.ArtworkKey(url))
package cache
