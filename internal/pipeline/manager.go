package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/stickerpack/internal/config"
	ioutils "github.com/handiism/stickerpack/internal/io"
	"github.com/handiism/stickerpack/internal/model"
	"github.com/handiism/stickerpack/internal/palette"
	"github.com/handiism/stickerpack/internal/render"
	"github.com/handiism/stickerpack/internal/report"
	"github.com/handiism/stickerpack/internal/scan"
)

// ErrNoFolders is returned by Initialize when no folder qualifies.
var ErrNoFolders = errors.New("no qualifying sticker folders found")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a processing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Renderer draws one template for a folder.
type Renderer interface {
	Render(folder *model.FolderRecord, tmpl model.Template) *image.RGBA
}

// Packager bundles a folder's rendered files and the per-folder archives.
type Packager interface {
	PackageFolder(ctx context.Context, folderName string, files []string) (string, error)
	CreateMasterPackage(ctx context.Context, archives []string) (string, error)
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRenderer replaces the default compositor.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithPackager replaces the default zip packager. A nil packager disables
// packaging regardless of settings.
func WithPackager(p Packager) Option {
	return func(m *Manager) {
		m.packager = p
		m.packagerSet = true
	}
}

// WithClock sets the time source used for the report timestamp and the
// master archive name.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager coordinates folder processing.
type Manager struct {
	settings    *config.Settings
	scanner     *scan.Scanner
	extractor   *palette.Extractor
	renderer    Renderer
	images      *ioutils.ImageService
	packager    Packager
	packagerSet bool
	now         func() time.Time

	folders       []*model.FolderRecord
	results       []report.FolderResult
	masterPackage string

	totalTemplates int32
	doneTemplates  int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	m := &Manager{
		settings:   settings,
		images:     ioutils.NewImageService(settings.ImageQuality),
		now:        time.Now,
		onProgress: onProgress,
	}

	m.extractor = palette.NewExtractor(settings.Method(), settings.Fallback(), m.warn)
	m.scanner = scan.NewScanner(settings.MinImages, m.skipped)

	for _, opt := range opts {
		opt(m)
	}

	if m.renderer == nil {
		m.renderer = render.New(settings.ToRenderOptions(), m.extractor, m.warn)
	}
	if !m.packagerSet && settings.CreatePackages {
		m.packager = ioutils.NewZipPackager(settings.OutputFolder, ioutils.WithClock(m.now))
	}

	return m
}

// Initialize scans the collection root for qualifying folders.
func (m *Manager) Initialize(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", root), Level: LevelInfo})
	folders, err := m.scanner.Scan(root)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return ErrNoFolders
	}

	for _, folder := range folders {
		m.found(folder)
	}
	m.setFolders(folders)
	return nil
}

// InitializeFolder loads a single folder instead of a whole collection.
func (m *Manager) InitializeFolder(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", scan.ErrRootNotFound, path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	folder, err := m.scanner.ScanFolder(path)
	if err != nil {
		return err
	}

	m.found(folder)
	m.setFolders([]*model.FolderRecord{folder})
	return nil
}

// StartProcessing renders all initialized folders, packages their outputs,
// and writes the processing report.
//
// Template and packaging failures are reported as events and recorded in
// the results; they do not fail the run. The returned error is non-nil
// only when ctx is canceled. A partial report is still written then.
func (m *Manager) StartProcessing(ctx context.Context) error {
	m.mu.RLock()
	folders := m.folders
	m.mu.RUnlock()

	results := make([]report.FolderResult, len(folders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.MaxConcurrentFolders))

	for i, folder := range folders {
		i, folder := i, folder
		g.Go(func() error {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("[%d/%d] Processing: %s", i+1, len(folders), folder.Name),
				Level:   LevelInfo,
			})
			results[i] = m.processFolder(gctx, folder)
			return nil
		})
	}
	g.Wait()

	var master string
	if m.packager != nil && ctx.Err() == nil {
		master = m.createMasterPackage(ctx, results)
	}

	m.mu.Lock()
	m.results = results
	m.masterPackage = master
	m.mu.Unlock()

	m.saveReport(context.WithoutCancel(ctx), results, master)

	return ctx.Err()
}

// GetProgress returns the number of templates finished and the total
// number of enabled templates across all folders.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneTemplates), atomic.LoadInt32(&m.totalTemplates)
}

// GetFolderNames returns a summary line for every initialized folder.
func (m *Manager) GetFolderNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.folders))
	for i, folder := range m.folders {
		names[i] = fmt.Sprintf("%s (%s)", folder.Name, folder.CountLabel())
	}
	return names
}

// Folders returns the initialized folders.
func (m *Manager) Folders() []*model.FolderRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.folders
}

// Results returns the folder results of the last run.
func (m *Manager) Results() []report.FolderResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]report.FolderResult(nil), m.results...)
}

// MasterPackage returns the master archive of the last run, if any.
func (m *Manager) MasterPackage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterPackage
}

// ReportPath returns where StartProcessing writes the report.
func (m *Manager) ReportPath() string {
	return report.Path(m.settings.OutputFolder)
}

func (m *Manager) setFolders(folders []*model.FolderRecord) {
	enabled := 0
	for _, tmpl := range model.Templates {
		if m.settings.TemplateEnabled(tmpl) {
			enabled++
		}
	}

	m.mu.Lock()
	m.folders = folders
	m.results = nil
	m.masterPackage = ""
	m.mu.Unlock()

	atomic.StoreInt32(&m.totalTemplates, int32(enabled*len(folders)))
	atomic.StoreInt32(&m.doneTemplates, 0)
}

func (m *Manager) found(folder *model.FolderRecord) {
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found folder: %s (%s, title %q)", folder.Name, folder.CountLabel(), folder.DisplayTitle()),
		Level:   LevelInfo,
	})
	if folder.HasMainImage() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Main image: %s", folder.MainImage), Level: LevelVerbose})
	}
}

func (m *Manager) skipped(name string, err error) {
	msg := fmt.Sprintf("Skipping %s: %v", name, err)
	if errors.Is(err, scan.ErrTooFewImages) {
		msg = fmt.Sprintf("Skipping %v", err)
	}
	m.progress(ProgressEvent{Message: msg, Level: LevelWarning})
}

func (m *Manager) createMasterPackage(ctx context.Context, results []report.FolderResult) string {
	var archives []string
	for _, r := range results {
		if r.Package != "" {
			archives = append(archives, r.Package)
		}
	}
	if len(archives) == 0 {
		return ""
	}

	master, err := m.packager.CreateMasterPackage(ctx, archives)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating master package: %v", err), Level: LevelError})
		return ""
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("All packs archived: %s", master), Level: LevelSuccess})
	return master
}

func (m *Manager) saveReport(ctx context.Context, results []report.FolderResult, master string) {
	path := m.ReportPath()
	r := report.New(m.settings, results, master, m.now())
	if err := r.Save(ctx, path); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving report: %v", err), Level: LevelError})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Report saved: %s", path), Level: LevelInfo})
}

func (m *Manager) warn(msg string) {
	m.progress(ProgressEvent{Message: msg, Level: LevelWarning})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
