// Package config provides configuration management for stickerpack.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Validation of ranges (quality, canvas size, thresholds)
//   - Conversion to the option structs used by other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 1200x1600 canvas, JPEG quality 95
//	// All four templates enabled
//	// Folders need at least 15 images
//
// # Loading from File
//
// The format is picked from the file extension (.yaml/.yml, otherwise JSON):
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Missing files are not an error: defaults are returned instead
//	}
//
// # Saving Settings
//
//	settings.OutputFolder = "/custom/output"
//	err := settings.Save("/path/to/config.yaml")
package config
