// Package model defines the records shared between catalog readers, the
// artwork fetcher and the collage core.
//
// # Locator
//
// A Locator is an opaque reference to one cover image:
//
//	loc := model.Locator("https://f4.bcbits.com/img/a0123456789_0.jpg")
//	loc.IsRemote() // true
//
// # Album, Track and Collection
//
// Catalog readers return a Collection of tracks in source order. Each track
// yields at most one cover locator, falling back to its album's artwork:
//
//	album := model.NewAlbum("Artist", "Title", artworkURL, releaseDate)
//	album.Tracks = append(album.Tracks, model.NewTrack(album, 1, "Song", 180))
//	c := model.NewCollection("Road Trip")
//	c.AddAlbum(album)
//	c.Locators() // one locator per track with a cover
//
// # Output Paths
//
// OutputConfig turns a template into the file name of a finished grid:
//
//	cfg := &model.OutputConfig{PathFormat: "{name}_{size}x{size}_{pattern}.png"}
//	cfg.Path("Road Trip", 4, "spiral", time.Now()) // "Road_Trip_4x4_spiral.png"
//
// Available placeholders: {name}, {size}, {pattern}, {date}
package model
