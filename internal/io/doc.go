// Package ioutils provides file system and image encoding utilities.
//
// This package contains functions for:
//   - Atomic file writing
//   - Directory creation
//   - Decoding cover art in any common format
//   - Encoding finished grids as PNG or JPEG
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/grid.png", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Expand a home-relative path
//	dir := ioutils.ExpandHome("~/.cache/album-grid")
//
// # Image Processing
//
// The ImageService handles cover art and output images:
//
//	svc := ioutils.NewImageService(90)
//
//	img, format, err := svc.Decode(ctx, coverData) // jpeg, png, gif, webp, bmp, tiff
//
//	// Output format follows the file extension
//	err = svc.Save(ctx, "Road_Trip_4x4_spiral.jpg", grid)
package ioutils
