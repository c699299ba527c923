// Package palette derives theme colors from sticker images and builds the
// gradient backgrounds they are drawn on.
//
// The default extraction method flattens the image onto white, samples it
// down to 100x100, drops near-white pixels and votes over an 8x8x8 bucket
// histogram. The winning bucket's true average is returned:
//
//	ext := palette.NewExtractor(palette.MethodHistogram, palette.DefaultFallback, nil)
//	c := ext.ExtractFile("/stickers/cats/01.png")
//	bg := palette.MakeGradient(c, 1200, 640)
//
// Extraction never fails: unreadable images and images without any
// non-white pixel yield the fallback color.
package palette
