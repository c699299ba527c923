// Package tui provides a Bubble Tea terminal user interface for stickerpack.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/stickerpack/internal/config"
	"github.com/handiism/stickerpack/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const (
	maxLogs      = 10
	maxFolders   = 8
	eventBacklog = 256
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateProcessing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	folders   []string
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	manager *pipeline.Manager
	events  chan pipeline.ProgressEvent

	// Template progress
	doneTemplates  int32
	totalTemplates int32

	// Summary of the finished run
	succeeded     int
	failed        int
	masterPackage string

	// Options
	packages bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model from settings. A nil settings value
// uses the defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/sticker/collection"
	ti.SetValue(settings.CollectionFolder)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan pipeline.ProgressEvent, eventBacklog),
		packages:  settings.CreatePackages,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries a pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// InitDoneMsg is sent when scanning completes.
	InitDoneMsg struct {
		Folders []string
		Manager *pipeline.Manager
		Err     error
	}

	// ProcessDoneMsg is sent when all folders are processed.
	ProcessDoneMsg struct {
		Done          int32
		Total         int32
		Succeeded     int
		Failed        int
		MasterPackage string
		Err           error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateProcessing || m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateScanning
				return m, tea.Batch(m.initializeRun(), m.waitForEvent(), m.spinner.Tick)
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.packages = !m.packages
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		if msg.Event.Level == pipeline.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.folders = msg.Folders
			m.manager = msg.Manager
			m.state = StateProcessing
			_, m.totalTemplates = m.manager.GetProgress()
			cmds = append(cmds, m.startProcessing(), m.tickProgress())
		}

	case ProcessDoneMsg:
		m.doneTemplates = msg.Done
		m.totalTemplates = msg.Total
		m.succeeded = msg.Succeeded
		m.failed = msg.Failed
		m.masterPackage = msg.MasterPackage
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateProcessing {
			m.doneTemplates, m.totalTemplates = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.folders = nil
	m.err = nil
	m.doneTemplates = 0
	m.totalTemplates = 0
	m.succeeded = 0
	m.failed = 0
	m.masterPackage = ""
	m.manager = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.events = make(chan pipeline.ProgressEvent, eventBacklog)
	m.textInput.Focus()
	return m
}

func (m Model) percent() float64 {
	if m.totalTemplates == 0 {
		return 0
	}
	return float64(m.doneTemplates) / float64(m.totalTemplates)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next pipeline event as a ProgressMsg.
// Once the run closes the channel it yields no message.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: ev}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎨 Sticker Pack"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Render preview sheets for sticker collections"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateProcessing:
		b.WriteString(m.viewProcessing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter collection folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create zip packages (ctrl+p)\n", checkbox(m.packages)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output folder: %s", m.settings.OutputFolder)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Minimum images per folder: %d", m.settings.MinImages)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning folders..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewProcessing() string {
	var b strings.Builder

	if len(m.folders) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d folder(s):", len(m.folders))))
		b.WriteString("\n")
		for i, folder := range m.folders {
			if i == maxFolders {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.folders)-maxFolders)))
				b.WriteString("\n")
				break
			}
			b.WriteString(folderStyle.Render(fmt.Sprintf("  ▪ %s", folder)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Templates: %d/%d", m.doneTemplates, m.totalTemplates)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	text := fmt.Sprintf(
		"✨ Processing Complete!\n\n"+
			"Folders: %d succeeded, %d failed\n"+
			"Templates: %d/%d\n"+
			"Output: %s",
		m.succeeded,
		m.failed,
		m.doneTemplates,
		m.totalTemplates,
		m.settings.OutputFolder,
	)
	if m.masterPackage != "" {
		text += fmt.Sprintf("\nPackage: %s", filepath.Base(m.masterPackage))
	}
	b.WriteString(boxStyle.Render(text))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+p: packages • ctrl+v: verbose • esc: quit"
	case StateScanning, StateProcessing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// initializeRun scans the collection and creates the manager.
func (m *Model) initializeRun() tea.Cmd {
	root := strings.TrimSpace(m.textInput.Value())

	settings := *m.settings
	settings.CollectionFolder = root
	settings.CreatePackages = m.packages

	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		manager := pipeline.NewManager(&settings, func(event pipeline.ProgressEvent) {
			// Drop events rather than stall the pipeline when the UI lags.
			select {
			case events <- event:
			default:
			}
		})

		if err := manager.Initialize(ctx, root); err != nil {
			close(events)
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Folders: manager.GetFolderNames(),
			Manager: manager,
		}
	}
}

// startProcessing runs the pipeline in the background.
func (m *Model) startProcessing() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		defer close(events)
		if manager == nil {
			return ProcessDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := manager.StartProcessing(ctx)
		done, total := manager.GetProgress()

		msg := ProcessDoneMsg{
			Done:          done,
			Total:         total,
			MasterPackage: manager.MasterPackage(),
			Err:           err,
		}
		for _, r := range manager.Results() {
			if r.Success {
				msg.Succeeded++
			} else {
				msg.Failed++
			}
		}
		return msg
	}
}

// Run starts the TUI application with the given settings.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
