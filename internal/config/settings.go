package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/stickerpack/internal/model"
	"github.com/handiism/stickerpack/internal/palette"
	"github.com/handiism/stickerpack/internal/render"
)

// Settings holds all configuration options.
type Settings struct {
	// Input/output
	CollectionFolder string `json:"collection_folder" yaml:"collection_folder"`
	OutputFolder     string `json:"output_folder" yaml:"output_folder"`
	MinImages        int    `json:"min_images" yaml:"min_images"`

	// Templates maps "template1".."template4" to their enabled flag.
	// Keys missing from the map count as enabled.
	Templates map[string]bool `json:"templates" yaml:"templates"`

	// Rendering
	CanvasSize    [2]int   `json:"canvas_size" yaml:"canvas_size"`
	ImageQuality  int      `json:"image_quality" yaml:"image_quality"`
	FontPath      string   `json:"font_path" yaml:"font_path"`
	IconPaths     []string `json:"icon_paths" yaml:"icon_paths"`
	ColorMethod   string   `json:"color_method" yaml:"color_method"` // histogram, dominantcolor, kmeans
	FallbackColor string   `json:"fallback_color" yaml:"fallback_color"`

	// Processing
	MaxConcurrentFolders int  `json:"max_concurrent_folders" yaml:"max_concurrent_folders"`
	CreatePackages       bool `json:"create_packages" yaml:"create_packages"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CollectionFolder: "",
		OutputFolder:     "output",
		MinImages:        15,
		Templates: map[string]bool{
			"template1": true,
			"template2": true,
			"template3": true,
			"template4": true,
		},

		CanvasSize:    [2]int{1200, 1600},
		ImageQuality:  95,
		FontPath:      "",
		ColorMethod:   palette.MethodHistogram.String(),
		FallbackColor: palette.DefaultFallback.Hex(),

		MaxConcurrentFolders: 1,
		CreatePackages:       true,
	}
}

// Load reads settings from a JSON or YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that numeric options are in range and named options are known.
func (s *Settings) Validate() error {
	if s.MinImages < 1 {
		return fmt.Errorf("min_images must be at least 1, got %d", s.MinImages)
	}
	if s.ImageQuality < 1 || s.ImageQuality > 100 {
		return fmt.Errorf("image_quality must be between 1 and 100, got %d", s.ImageQuality)
	}
	if s.CanvasSize[0] <= 0 || s.CanvasSize[1] <= 0 {
		return fmt.Errorf("canvas_size must be positive, got %v", s.CanvasSize)
	}
	if s.MaxConcurrentFolders < 1 {
		return fmt.Errorf("max_concurrent_folders must be at least 1, got %d", s.MaxConcurrentFolders)
	}
	if _, err := palette.ParseMethod(s.ColorMethod); err != nil {
		return err
	}
	if _, err := model.ParseHexColor(s.FallbackColor); err != nil {
		return fmt.Errorf("fallback_color: %w", err)
	}
	return nil
}

// TemplateEnabled reports whether the template's flag is set.
func (s *Settings) TemplateEnabled(t model.Template) bool {
	enabled, ok := s.Templates[t.Key]
	return !ok || enabled
}

// Fallback returns the parsed fallback color, or the built-in default
// when the configured value is unparsable.
func (s *Settings) Fallback() model.Color {
	c, err := model.ParseHexColor(s.FallbackColor)
	if err != nil {
		return palette.DefaultFallback
	}
	return c
}

// Method returns the parsed color extraction method.
func (s *Settings) Method() palette.Method {
	m, err := palette.ParseMethod(s.ColorMethod)
	if err != nil {
		return palette.MethodHistogram
	}
	return m
}

// ToRenderOptions converts settings to compositor options.
func (s *Settings) ToRenderOptions() render.Options {
	return render.Options{
		Width:     s.CanvasSize[0],
		Height:    s.CanvasSize[1],
		FontPath:  s.FontPath,
		IconPaths: s.IconPaths,
		Fallback:  s.Fallback(),
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
