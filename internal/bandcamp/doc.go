// Package bandcamp reads cover art locators from Bandcamp pages.
//
// The package handles three use cases:
//
//  1. Parsing album/track pages into albums with cover URLs
//  2. Parsing artist discography pages to discover all releases
//  3. Expanding a URL into a Collection with Source
//
// # Release Pages
//
// ParseRelease extracts the album embedded in a Bandcamp album page:
//
//	album, err := bandcamp.ParseRelease(page, dto.Artwork700)
//	fmt.Println(album.Artwork()) // https://f4.bcbits.com/img/a0123456789_16.jpg
//
// # Artist Pages
//
// ReleasePaths lists every release linked from an artist's music page:
//
//	paths, err := bandcamp.ReleasePaths(musicPage)
//	// ["/album/my-album", "/track/my-single"]
//
// # Sources
//
// Source combines both and fetches pages through any PageGetter:
//
//	src := bandcamp.NewSource(client, dto.Artwork700, 4)
//	c, err := src.Collection(ctx, "https://artist.bandcamp.com")
//	locators := c.Locators() // one cover per track, in page order
//
// # Bandcamp Data Format
//
// Bandcamp embeds album data as JSON in the HTML page within a
// `data-tralbum` attribute. This package extracts and parses that JSON,
// handling Bandcamp's non-standard date format and fixing malformed JSON.
package bandcamp
