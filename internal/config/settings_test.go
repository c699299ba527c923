package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/stickerpack/internal/model"
	"github.com/handiism/stickerpack/internal/palette"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MinImages != 15 {
		t.Errorf("MinImages = %d, want 15", s.MinImages)
	}
	if s.CanvasSize != [2]int{1200, 1600} {
		t.Errorf("CanvasSize = %v, want [1200 1600]", s.CanvasSize)
	}
	if s.ImageQuality != 95 {
		t.Errorf("ImageQuality = %d, want 95", s.ImageQuality)
	}
	for _, tmpl := range model.Templates {
		if !s.TemplateEnabled(tmpl) {
			t.Errorf("template %s should be enabled by default", tmpl.Key)
		}
	}
	if s.Fallback() != palette.DefaultFallback {
		t.Errorf("Fallback() = %+v, want %+v", s.Fallback(), palette.DefaultFallback)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")

	content := `{
  "collection_folder": "/stickers",
  "min_images": 3,
  "templates": {"template3": false},
  "canvas_size": [600, 800],
  "image_quality": 80,
  "color_method": "kmeans"
}`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	s, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.CollectionFolder != "/stickers" {
		t.Errorf("CollectionFolder = %q, want /stickers", s.CollectionFolder)
	}
	if s.MinImages != 3 {
		t.Errorf("MinImages = %d, want 3", s.MinImages)
	}
	if s.CanvasSize != [2]int{600, 800} {
		t.Errorf("CanvasSize = %v, want [600 800]", s.CanvasSize)
	}
	if s.TemplateEnabled(model.Templates[2]) {
		t.Error("template3 should be disabled")
	}
	if !s.TemplateEnabled(model.Templates[1]) {
		t.Error("template2 should stay enabled when omitted from the map")
	}
	if s.Method() != palette.MethodKMeans {
		t.Errorf("Method() = %v, want kmeans", s.Method())
	}
	// Untouched fields keep their defaults
	if s.OutputFolder != "output" {
		t.Errorf("OutputFolder = %q, want default", s.OutputFolder)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	content := `
collection_folder: "/stickers"
output_folder: "/out"
min_images: 1
canvas_size: [1000, 1400]
font_path: "fonts/display.ttf"
fallback_color: "#336699"
templates:
  template1: true
  template4: false
`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	s, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.OutputFolder != "/out" {
		t.Errorf("OutputFolder = %q, want /out", s.OutputFolder)
	}
	if s.CanvasSize != [2]int{1000, 1400} {
		t.Errorf("CanvasSize = %v, want [1000 1400]", s.CanvasSize)
	}
	if s.TemplateEnabled(model.Templates[3]) {
		t.Error("template4 should be disabled")
	}
	if got := s.Fallback(); got != (model.Color{R: 0x33, G: 0x66, B: 0x99}) {
		t.Errorf("Fallback() = %+v", got)
	}

	opts := s.ToRenderOptions()
	if opts.Width != 1000 || opts.Height != 1400 || opts.FontPath != "fonts/display.ttf" {
		t.Errorf("ToRenderOptions() = %+v", opts)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() on missing file should not fail: %v", err)
	}
	if s.MinImages != DefaultSettings().MinImages {
		t.Error("expected default settings")
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configFile, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configFile); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero min images", func(s *Settings) { s.MinImages = 0 }},
		{"quality too high", func(s *Settings) { s.ImageQuality = 101 }},
		{"quality zero", func(s *Settings) { s.ImageQuality = 0 }},
		{"negative canvas", func(s *Settings) { s.CanvasSize = [2]int{-1, 100} }},
		{"zero workers", func(s *Settings) { s.MaxConcurrentFolders = 0 }},
		{"unknown color method", func(s *Settings) { s.ColorMethod = "median-cut" }},
		{"bad fallback color", func(s *Settings) { s.FallbackColor = "gold" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			s := DefaultSettings()
			s.CollectionFolder = "/stickers"
			s.MinImages = 9
			s.Templates["template2"] = false

			if err := s.Save(path); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if loaded.CollectionFolder != "/stickers" || loaded.MinImages != 9 {
				t.Errorf("loaded = %+v", loaded)
			}
			if loaded.TemplateEnabled(model.Templates[1]) {
				t.Error("template2 should round-trip as disabled")
			}
		})
	}
}
