package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/handiism/stickerpack/internal/config"
	ioutils "github.com/handiism/stickerpack/internal/io"
)

// FileName is the report's name inside the output root.
const FileName = "_processing_report.json"

// Path returns the report location for an output root.
func Path(outputRoot string) string {
	return filepath.Join(outputRoot, FileName)
}

// TemplateResult is the outcome of one template for one folder.
type TemplateResult struct {
	Template int     `json:"template"`
	Label    string  `json:"label"`
	File     string  `json:"file,omitempty"`
	Skipped  bool    `json:"skipped,omitempty"`
	Error    string  `json:"error,omitempty"`
	RenderMs float64 `json:"render_ms,omitempty"`
}

// Failed reports whether the template was attempted and failed.
func (r TemplateResult) Failed() bool {
	return r.Error != ""
}

// FolderResult is the outcome of one folder.
type FolderResult struct {
	Folder    string           `json:"folder"`
	Success   bool             `json:"success"`
	Files     []string         `json:"files"`
	Package   string           `json:"package,omitempty"`
	Templates []TemplateResult `json:"templates,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	Total           int     `json:"total"`
	Success         int     `json:"success"`
	Failed          int     `json:"failed"`
	Templates       int     `json:"templates"`
	FailedTemplates int     `json:"failed_templates"`
	MeanRenderMs    float64 `json:"mean_render_ms"`
	StdDevRenderMs  float64 `json:"stddev_render_ms"`
}

// Report is the serialized end-of-run record.
type Report struct {
	Timestamp     time.Time        `json:"timestamp"`
	Config        *config.Settings `json:"config"`
	Results       []FolderResult   `json:"results"`
	Summary       Summary          `json:"summary"`
	MasterPackage string           `json:"master_package,omitempty"`
}

// New assembles a report and computes its summary.
func New(settings *config.Settings, results []FolderResult, masterPackage string, now time.Time) *Report {
	if results == nil {
		results = []FolderResult{}
	}
	return &Report{
		Timestamp:     now,
		Config:        settings,
		Results:       results,
		Summary:       Summarize(results),
		MasterPackage: masterPackage,
	}
}

// Summarize counts folder and template outcomes. Render statistics cover
// templates that were rendered, successful or not; skipped templates are
// left out. The standard deviation is the sample deviation and is zero
// for fewer than two samples.
func Summarize(results []FolderResult) Summary {
	var s Summary
	var times []float64

	for _, r := range results {
		s.Total++
		if r.Success {
			s.Success++
		} else {
			s.Failed++
		}

		for _, t := range r.Templates {
			if t.Skipped {
				continue
			}
			s.Templates++
			if t.Failed() {
				s.FailedTemplates++
			}
			if t.RenderMs > 0 {
				times = append(times, t.RenderMs)
			}
		}
	}

	if len(times) > 0 {
		s.MeanRenderMs = stat.Mean(times, nil)
	}
	if len(times) > 1 {
		s.StdDevRenderMs = stat.StdDev(times, nil)
	}
	return s
}

// Save writes the report as indented JSON.
func (r *Report) Save(ctx context.Context, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
