// Package cli implements the album-grid command-line interface.
//
// # Commands
//
//   - generate: Build a grid from a Bandcamp URL, playlist, export or list
//   - serve: Render grids over HTTP
//   - cache clear: Remove cached covers; cache path: print the cache directory
//
// # Configuration
//
// Settings come from --config (JSON, TOML or YAML), then ALBUMGRID_*
// environment variables (a .env file in the working directory is loaded
// first), then command flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
package cli
