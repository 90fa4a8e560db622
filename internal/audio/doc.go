// Package audio reads local music libraries: playlists and the cover art
// embedded in MP3 files.
//
// # Playlists
//
// Read a playlist into a Collection whose track covers point at the audio
// files themselves:
//
//	format, err := audio.FormatFromPath("road-trip.m3u")
//	f, _ := os.Open("road-trip.m3u")
//	c, err := audio.NewPlaylistReader(format).Read(f, filepath.Dir("road-trip.m3u"))
//
// Supported formats:
//   - M3U and M3U8 (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
//
// # Embedded Artwork
//
// ReadPicture returns the APIC frame of an MP3, preferring the front cover:
//
//	pic, err := audio.ReadPicture("/music/01 Song.mp3")
//	img, _, err := image.Decode(bytes.NewReader(pic.Data))
//
// ReadTrack reads title, artist, album and track number from the same tag.
package audio
