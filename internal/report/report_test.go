package report

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/stickerpack/internal/config"
)

func TestSummarize(t *testing.T) {
	results := []FolderResult{
		{
			Folder:  "Cats",
			Success: true,
			Templates: []TemplateResult{
				{Template: 1, Label: "hero", RenderMs: 10},
				{Template: 2, Label: "grid1", RenderMs: 20},
				{Template: 3, Label: "grid2", Skipped: true},
			},
		},
		{
			Folder:  "Dogs",
			Success: false,
			Templates: []TemplateResult{
				{Template: 1, Label: "hero", RenderMs: 30, Error: "disk full"},
			},
		},
		{Folder: "Birds", Success: false, Error: "scan failed"},
	}

	s := Summarize(results)

	if s.Total != 3 || s.Success != 1 || s.Failed != 2 {
		t.Errorf("folder counts = %d/%d/%d, want 3/1/2", s.Total, s.Success, s.Failed)
	}
	if s.Templates != 3 || s.FailedTemplates != 1 {
		t.Errorf("template counts = %d/%d, want 3/1", s.Templates, s.FailedTemplates)
	}
	if s.MeanRenderMs != 20 {
		t.Errorf("MeanRenderMs = %v, want 20", s.MeanRenderMs)
	}
	if math.Abs(s.StdDevRenderMs-10) > 1e-9 {
		t.Errorf("StdDevRenderMs = %v, want 10", s.StdDevRenderMs)
	}
}

func TestSummarize_SingleSampleHasNoDeviation(t *testing.T) {
	s := Summarize([]FolderResult{{
		Success:   true,
		Templates: []TemplateResult{{Template: 1, RenderMs: 42}},
	}})
	if s.MeanRenderMs != 42 || s.StdDevRenderMs != 0 {
		t.Errorf("stats = %v/%v, want 42/0", s.MeanRenderMs, s.StdDevRenderMs)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := Path(t.TempDir())
	if filepath.Base(path) != "_processing_report.json" {
		t.Fatalf("Path() = %q", path)
	}

	settings := config.DefaultSettings()
	now := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	r := New(settings, []FolderResult{{
		Folder:  "Cats",
		Success: true,
		Files:   []string{"/out/Cats/01_hero_Cats.jpg"},
	}}, "/out/_zip_packages/sticker_packs_0307_0905.zip", now)

	if err := r.Save(context.Background(), path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v", got.Timestamp)
	}
	if got.Summary.Total != 1 || got.Summary.Success != 1 {
		t.Errorf("Summary = %+v", got.Summary)
	}
	if got.Config == nil || got.Config.MinImages != settings.MinImages {
		t.Errorf("Config = %+v", got.Config)
	}
	if got.MasterPackage != r.MasterPackage {
		t.Errorf("MasterPackage = %q", got.MasterPackage)
	}
}

func TestNew_NilResultsSerializeAsEmpty(t *testing.T) {
	r := New(config.DefaultSettings(), nil, "", time.Now())
	if r.Results == nil {
		t.Error("Results is nil")
	}
}
