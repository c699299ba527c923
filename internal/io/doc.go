// Package ioutils provides file system, encoding, and packaging utilities.
//
// This package contains:
//   - Atomic file writing and directory creation
//   - JPEG encoding of rendered canvases (ImageService)
//   - Zip packaging of per-folder outputs (ZipPackager)
//
// # File Operations
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/out/_processing_report.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/out/Cats")
//
// # Image Encoding
//
// Canvases are flattened onto white and written as JPEG:
//
//	svc := ioutils.NewImageService(95)
//	err := svc.SaveJPEG(ctx, "/out/Cats/01_hero_Cats.jpg", canvas)
//
// # Packaging
//
//	p := ioutils.NewZipPackager("/out")
//	archive, _ := p.PackageFolder(ctx, "Cats", files)
//	master, _ := p.CreateMasterPackage(ctx, []string{archive})
package ioutils
