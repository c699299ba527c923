// Package pipeline orchestrates batch rendering of sticker collections.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Scan the collection (or load a single folder)
//  2. Render every enabled template for each folder
//  3. Encode each canvas as JPEG under {output}/{folder}/
//  4. Package each folder's files, then build a master archive (optional)
//  5. Write the processing report
//
// # Basic Usage
//
//	manager := pipeline.NewManager(settings, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "/path/to/collection"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.StartProcessing(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Isolation
//
// A failing template (a write error or a panic while rendering) is
// recorded in the folder's result and reported as an error event; the
// remaining templates and folders still run. Only scanning errors and
// cancellation are returned to the caller.
//
// # Concurrency
//
// Folders run sequentially unless settings.MaxConcurrentFolders is raised,
// in which case they share an errgroup with that limit. Templates within a
// folder always run in order, so a folder's files are packaged hero first.
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
// The callback may be invoked from several goroutines at once when
// folders run concurrently.
package pipeline
