// Package http provides the HTTP client used to read catalog pages and
// download cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Non-200 responses as *StatusError
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Fetch an image
//	data, err := client.Get(ctx, artworkURL)
//	var se *http.StatusError
//	if errors.As(err, &se) && se.StatusCode == 404 {
//	    // cover is gone
//	}
//
// Requests are never retried.
package http
