// Package render composites sticker images into the fixed template layouts.
//
// Two recipes exist:
//
//   - Hero: a header band (top 40% of the canvas) with a gradient in the
//     main image's dominant color, the main image, title, subtitle, an
//     image count and two icon glyphs; below it a 3x3 grid.
//   - Grid: a full-page 3x5 grid of exactly 15 images, wrapping around to
//     the start of the folder when fewer remain.
//
// Every grid cell is 400x320 pixels regardless of the canvas size. Images
// are shrunk to fit their box (never enlarged), centered, and composited
// onto white. An image that cannot be decoded is replaced with a gray
// "Error" placeholder so a single bad file never aborts a template.
//
//	comp := render.New(opts, extractor, func(msg string) { log.Println(msg) })
//	hero := comp.RenderHero(folder)
//	page := comp.RenderGrid(folder, 15)
//
// A Compositor only holds immutable state after New returns, so it may be
// shared by goroutines rendering different folders.
package render
