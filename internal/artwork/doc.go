// Package artwork fetches and decodes cover images for the collage
// pipeline.
//
// A Fetcher accepts any model.Locator:
//
//	https://...        cache, then HTTP GET (status 200 required)
//	/music/song.mp3    embedded ID3 front cover
//	/covers/a.jpg      file on disk (file:// URLs too)
//
// Decoding supports JPEG, PNG, GIF, WebP, BMP and TIFF. Only downloads that
// decode as an image are cached.
package artwork
