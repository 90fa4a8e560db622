// Package server exposes grid generation over HTTP.
//
// GET /grid reads a remote source (a Bandcamp album or artist page, or a
// playlist export served over HTTP), builds the grid and returns it encoded
// as PNG or JPEG. Local paths are rejected so the server never reads its own
// file system on behalf of a client.
//
// Every response carries:
//
//	X-Grid-Id         request id (UUID)
//	X-Grid-Dimension  grid dimension in cells
//	X-Grid-Placed     number of painted cells
//
// Status codes: 400 for bad parameters or unsupported sources, 422 when the
// source yields no usable covers, 502 when the upstream source fails.
package server
