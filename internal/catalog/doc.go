// Package catalog turns a source string into an ordered Collection of
// tracks, each carrying at most one cover locator.
//
//	r := catalog.NewResolver(bandcampSource)
//	c, err := r.Read(ctx, "https://artist.bandcamp.com")
//	c, err = r.Read(ctx, "liked-songs.json")
//	c, err = r.Read(ctx, "/music/road-trip.m3u")
//	c, err = r.Read(ctx, "/music/covers/")
//	c, err = r.Read(ctx, "-") // one locator per line on stdin
//
// Order matters: it is the order covers are selected and truncated in
// before the hue sort.
package catalog
