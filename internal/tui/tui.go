// Package tui provides a Bubble Tea terminal user interface for album-grid.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/album-grid/internal/collage"
	"github.com/handiism/album-grid/internal/config"
	"github.com/handiism/album-grid/internal/generate"
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

	patternStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateReading
	StateFetching
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *generate.Manager
	events  chan generate.ProgressEvent

	// Fetch progress
	fetched int32
	failed  int32
	total   int32

	// Finished grid
	name      string
	covers    int
	dimension int
	placed    int
	output    string

	// Options
	pattern collage.Pattern
	dedupe  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil settings uses the defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "https://artist.bandcamp.com or ~/playlists/road-trip.m3u"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	pattern, err := collage.ParsePattern(settings.Pattern)
	if err != nil {
		pattern = collage.PatternRowMajor
	}

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan generate.ProgressEvent, 256),
		pattern:   pattern,
		dedupe:    settings.RemoveDuplicates,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// InitDoneMsg is sent when the source has been read.
	InitDoneMsg struct {
		Manager *generate.Manager
		Name    string
		Covers  int
		Err     error
	}

	// GenerateDoneMsg is sent when the grid has been built and saved.
	GenerateDoneMsg struct {
		Result *collage.Result
		Path   string
		Err    error
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
			if m.state == StateReading || m.state == StateFetching {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateReading
				return m, tea.Batch(m.initialize(), m.spinner.Tick, m.tickProgress())
			}

		case "tab":
			if m.state == StateInput {
				m.pattern = nextPattern(m.pattern)
				return m, nil
			}

		case "ctrl+d":
			if m.state == StateInput {
				m.dedupe = !m.dedupe
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
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case InitDoneMsg:
		if m.state != StateReading {
			// Cancelled while reading.
			if msg.Manager != nil {
				msg.Manager.Close()
			}
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.manager = msg.Manager
		m.name = msg.Name
		m.covers = msg.Covers
		m.state = StateFetching
		cmds = append(cmds, m.generate())

	case GenerateDoneMsg:
		m.drainEvents()
		if m.manager != nil {
			m.fetched, m.failed, m.total = m.manager.GetProgress()
			m.manager.Close()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.dimension = msg.Result.Dimension
			m.placed = msg.Result.Placed
			m.output = msg.Path
		}

	case TickMsg:
		m.drainEvents()
		if m.state == StateReading || m.state == StateFetching {
			if m.manager != nil {
				m.fetched, m.failed, m.total = m.manager.GetProgress()
			}
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

// reset prepares the model for a new grid.
func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.manager = nil
	m.fetched, m.failed, m.total = 0, 0, 0
	m.name, m.covers, m.dimension, m.placed, m.output = "", 0, 0, 0, ""
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.events = make(chan generate.ProgressEvent, 256)
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// drainEvents moves pending progress events into the log tail.
func (m *Model) drainEvents() {
	for {
		select {
		case e := <-m.events:
			if e.Level == generate.LevelVerbose && !m.verbose {
				continue
			}
			m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		default:
			return
		}
	}
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.fetched+m.failed) / float64(m.total)
}

// nextPattern cycles through the layout patterns.
func nextPattern(p collage.Pattern) collage.Pattern {
	patterns := collage.Patterns()
	i := slices.Index(patterns, p)
	return patterns[(i+1)%len(patterns)]
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("▦ Album Grid"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Color-sorted cover grids"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateReading:
		b.WriteString(m.viewReading())
	case StateFetching:
		b.WriteString(m.viewFetching())
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

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a Bandcamp URL, playlist or folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	dedupeCheck := "[ ]"
	if m.dedupe {
		dedupeCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Pattern: %s (tab)\n", patternStyle.Render(m.pattern.String())))
	b.WriteString(fmt.Sprintf("  %s Remove duplicates (ctrl+d)\n", dedupeCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s", m.settings.OutputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewReading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading source..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("%s: %d covers", m.name, m.covers)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Covers: %d/%d | Failed: %d", m.fetched, m.total, m.failed)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"✨ Grid Complete!\n\n"+
			"Grid: %dx%d %s\n"+
			"Covers: %d (%d failed)\n"+
			"Saved: %s",
		m.dimension, m.dimension, m.pattern,
		m.placed, m.failed,
		m.output,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generate.LevelError:
			style = errorStyle
			prefix = "✗"
		case generate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generate.LevelInfo:
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
		return "enter: start • tab: pattern • ctrl+d: dedupe • ctrl+v: verbose • esc: quit"
	case StateReading, StateFetching:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new grid • q: quit"
	}
	return ""
}

// initialize reads the source and creates the manager.
func (m Model) initialize() tea.Cmd {
	source := strings.TrimSpace(m.textInput.Value())
	settings := *m.settings
	settings.Pattern = m.pattern.String()
	settings.RemoveDuplicates = m.dedupe
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		manager := generate.NewManager(&settings, func(e generate.ProgressEvent) {
			select {
			case events <- e:
			default:
				// The log tail only shows the latest lines.
			}
		})

		if err := manager.Initialize(ctx, source); err != nil {
			manager.Close()
			return InitDoneMsg{Err: err}
		}

		c := manager.Collection()
		return InitDoneMsg{
			Manager: manager,
			Name:    c.Name,
			Covers:  len(c.Locators()),
		}
	}
}

// generate builds and saves the grid in the background.
func (m Model) generate() tea.Cmd {
	manager := m.manager
	ctx := m.ctx

	return func() tea.Msg {
		result, err := manager.Generate(ctx)
		if err != nil {
			return GenerateDoneMsg{Err: err}
		}
		path := manager.OutputPath(result)
		if err := manager.Save(ctx, result, path); err != nil {
			return GenerateDoneMsg{Err: err}
		}
		return GenerateDoneMsg{Result: result, Path: path}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
