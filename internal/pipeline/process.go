package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/handiism/stickerpack/internal/model"
	"github.com/handiism/stickerpack/internal/report"
)

// Process renders and writes every enabled template of folder in template
// order. It returns the files written and one result per template,
// including disabled (skipped) and failed ones. Processing stops before
// the next template once ctx is canceled.
func (m *Manager) Process(ctx context.Context, folder *model.FolderRecord) ([]model.TemplateOutput, []report.TemplateResult) {
	var outputs []model.TemplateOutput
	var results []report.TemplateResult

	for _, tmpl := range model.Templates {
		if !m.settings.TemplateEnabled(tmpl) {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Template %d (%s) disabled, skipping", tmpl.Index, tmpl.Label),
				Level:   LevelVerbose,
			})
			results = append(results, report.TemplateResult{Template: tmpl.Index, Label: tmpl.Label, Skipped: true})
			continue
		}
		if ctx.Err() != nil {
			break
		}

		out, res := m.processTemplate(ctx, folder, tmpl)
		atomic.AddInt32(&m.doneTemplates, 1)
		results = append(results, res)
		if !res.Failed() {
			outputs = append(outputs, out)
		}
	}

	return outputs, results
}

// processTemplate renders and writes one template. Panics raised while
// rendering are turned into a failed result.
func (m *Manager) processTemplate(ctx context.Context, folder *model.FolderRecord, tmpl model.Template) (out model.TemplateOutput, res report.TemplateResult) {
	res = report.TemplateResult{Template: tmpl.Index, Label: tmpl.Label}

	defer func() {
		if r := recover(); r != nil {
			res.Error = fmt.Sprintf("panic: %v", r)
			m.templateFailed(folder, tmpl, res.Error)
		}
	}()

	start := time.Now()
	canvas := m.renderer.Render(folder, tmpl)
	res.RenderMs = float64(time.Since(start).Microseconds()) / 1000

	path := tmpl.OutputPath(m.settings.OutputFolder, folder.Name)
	if err := m.images.SaveJPEG(ctx, path, canvas); err != nil {
		res.Error = err.Error()
		m.templateFailed(folder, tmpl, res.Error)
		return out, res
	}

	res.File = path
	out = model.TemplateOutput{FolderName: folder.Name, TemplateIndex: tmpl.Index, FilePath: path}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Generated: %s", filepath.Base(path)), Level: LevelVerbose})
	return out, res
}

func (m *Manager) templateFailed(folder *model.FolderRecord, tmpl model.Template, msg string) {
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Template %d (%s) failed for %s: %s", tmpl.Index, tmpl.Label, folder.Name, msg),
		Level:   LevelError,
	})
}

// processFolder runs Process and packages the folder's files.
func (m *Manager) processFolder(ctx context.Context, folder *model.FolderRecord) report.FolderResult {
	outputs, templates := m.Process(ctx, folder)

	res := report.FolderResult{
		Folder:    folder.Name,
		Success:   true,
		Files:     make([]string, 0, len(outputs)),
		Templates: templates,
	}
	for _, out := range outputs {
		res.Files = append(res.Files, out.FilePath)
	}

	failed := 0
	for _, t := range templates {
		if t.Failed() {
			failed++
		}
	}
	if failed > 0 {
		res.Success = false
		res.Error = fmt.Sprintf("%d template(s) failed", failed)
	}
	if err := ctx.Err(); err != nil {
		res.Success = false
		res.Error = err.Error()
		return res
	}

	if m.packager != nil && len(res.Files) > 0 {
		pkg, err := m.packager.PackageFolder(ctx, folder.Name, res.Files)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error packaging %s: %v", folder.Name, err), Level: LevelWarning})
		} else {
			res.Package = pkg
			m.progress(ProgressEvent{Message: fmt.Sprintf("Packaged: %s", filepath.Base(pkg)), Level: LevelVerbose})
		}
	}

	if res.Success {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Finished %s: %d file(s)", folder.Name, len(res.Files)),
			Level:   LevelSuccess,
		})
	} else {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Finished %s, %s", folder.Name, res.Error),
			Level:   LevelWarning,
		})
	}
	return res
}
