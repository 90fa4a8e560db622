// Package generate provides the orchestration logic for building an album
// grid from a source.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Read the source into a collection (Bandcamp, playlist, export, list)
//  2. Deduplicate and select at most 300 cover locators
//  3. Fetch and decode covers concurrently, dropping failures
//  4. Sort by hue, lay out with the chosen pattern and paint the canvas
//  5. Encode to PNG or JPEG
//
// # Basic Usage
//
//	manager := generate.NewManager(settings, func(event generate.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	defer manager.Close()
//
//	if err := manager.Initialize(ctx, "https://artist.bandcamp.com"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := manager.Generate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = manager.Save(ctx, result, manager.OutputPath(result))
//
// # Concurrency
//
// Fetches run on an errgroup limited by settings.MaxConcurrentFetches. Each
// result lands in the slot of its locator, so the grid never depends on
// which fetch finished first.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// The callback may be invoked from several goroutines at once.
//
// # Failures
//
// Fetches are never retried. A cover that cannot be fetched or decoded is
// reported at LevelWarning and left out of the grid.
package generate
