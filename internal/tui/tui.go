// Package tui is the interactive Bubble Tea front end for the
// splitter: a form for the recording and timestamp listing, a review
// of the planned tracks, and a live progress view while cutting.
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/album-splitter/internal/config"
	"github.com/handiism/album-splitter/internal/split"
)

// State names the screen currently shown.
type State int

const (
	StateInput State = iota
	StateParsing
	StateReview
	StateSplitting
	StateComplete
	StateError
)

// LogEntry is one progress message shown in the log pane.
type LogEntry struct {
	Message string
	Level   split.ProgressLevel
}

// eventLog collects progress events from the manager's worker
// goroutines until the next tick drains them into the model.
type eventLog struct {
	mu     sync.Mutex
	events []split.ProgressEvent
}

func (l *eventLog) add(event split.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) drain() []split.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// Messages produced by the background commands.
type (
	// parsedMsg carries the result of Initialize.
	parsedMsg struct {
		summary string
		tracks  []string
		manager *split.Manager
		err     error
	}

	// exportedMsg carries the result of StartExport.
	exportedMsg struct {
		written    int64
		total      int64
		files      int32
		totalFiles int32
		err        error
	}

	// tickMsg drives the periodic progress poll.
	tickMsg time.Time
)

// Model is the Bubble Tea model for the whole UI.
type Model struct {
	state State
	theme theme

	sourceInput textinput.Model
	configInput textinput.Model
	focusIndex  int
	spinner     spinner.Model
	progress    progress.Model

	settings *config.Settings
	logs     []LogEntry
	events   *eventLog
	err      error

	ctx     context.Context
	cancel  context.CancelFunc
	manager *split.Manager

	// Planned album, shown for review before anything is written.
	albumSummary string
	tracks       []string

	totalFiles   int32
	splitFiles   int32
	totalBytes   int64
	writtenBytes int64

	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel builds the initial model, focused on the recording path
// field.
func NewModel() Model {
	th := defaultTheme()

	source := textinput.New()
	source.Placeholder = "path/to/recording.mp3"
	source.Focus()
	source.CharLimit = 500
	source.Width = 60

	cfg := textinput.New()
	cfg.Placeholder = "path/to/tracklist.txt"
	cfg.CharLimit = 500
	cfg.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.title

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		theme:       th,
		sourceInput: source,
		configInput: cfg,
		spinner:     sp,
		progress:    prog,
		settings:    config.DefaultSettings(),
		events:      &eventLog{},
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init starts the cursor blink and spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update routes messages to the state-specific handlers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case parsedMsg:
		m = m.applyParsed(msg)

	case exportedMsg:
		m = m.applyExported(msg)

	case tickMsg:
		var cmd tea.Cmd
		m, cmd = m.applyTick()
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Whatever else happened, the focused path field still gets the
	// message, so typing and cursor blinking work.
	if m.state == StateInput {
		var cmd tea.Cmd
		if m.focusIndex == 0 {
			m.sourceInput, cmd = m.sourceInput.Update(msg)
		} else {
			m.configInput, cmd = m.configInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	w := msg.Width - 20
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	m.progress.Width = w
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.state {
	case StateInput:
		return m.handleInputKey(msg)

	case StateReview:
		return m.handleReviewKey(msg)

	case StateParsing, StateSplitting:
		if msg.String() == "esc" {
			m.cancel()
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		}

	case StateComplete, StateError:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			return m.reset(), nil
		}
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		m.focusInput(1 - m.focusIndex)

	case "enter":
		if m.sourceInput.Value() != "" && m.configInput.Value() != "" {
			m.state = StateParsing
			return m, tea.Batch(m.parseCmd(), m.spinner.Tick, m.scheduleTick())
		}

	// Plain letters land in the focused path field, so the option
	// toggles use control chords.
	case "ctrl+p":
		m.playlist = !m.playlist

	case "ctrl+v":
		m.verbose = !m.verbose
	}

	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Back to the form; nothing has been written yet.
		m.state = StateInput
		m.manager = nil
		m.albumSummary = ""
		m.tracks = nil
		m.focusInput(0)

	case "enter":
		m.state = StateSplitting
		return m, tea.Batch(m.exportCmd(), m.scheduleTick())
	}

	return m, nil
}

// reset returns the model to a blank input form for another run.
func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.albumSummary = ""
	m.tracks = nil
	m.err = nil
	m.manager = nil
	m.splitFiles = 0
	m.totalFiles = 0
	m.writtenBytes = 0
	m.totalBytes = 0
	m.events = &eventLog{}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.sourceInput.SetValue("")
	m.configInput.SetValue("")
	m.focusInput(0)
	return m
}

func (m Model) applyParsed(msg parsedMsg) Model {
	m.appendEvents()
	if msg.err != nil {
		m.state = StateError
		m.err = msg.err
		return m
	}

	m.albumSummary = msg.summary
	m.tracks = msg.tracks
	m.manager = msg.manager
	m.state = StateReview
	return m
}

func (m Model) applyExported(msg exportedMsg) Model {
	m.appendEvents()
	m.writtenBytes = msg.written
	m.totalBytes = msg.total
	m.splitFiles = msg.files
	m.totalFiles = msg.totalFiles

	switch {
	case m.ctx.Err() != nil:
		m.state = StateError
		m.err = fmt.Errorf("cancelled by user")
	case msg.err != nil:
		m.state = StateError
		m.err = msg.err
	default:
		m.state = StateComplete
	}
	return m
}

func (m Model) applyTick() (Model, tea.Cmd) {
	switch m.state {
	case StateParsing:
		m.appendEvents()
		return m, m.scheduleTick()

	case StateSplitting:
		if m.manager == nil {
			return m, nil
		}
		m.appendEvents()

		written, total, files, totalFiles := m.manager.GetProgress()
		m.writtenBytes = written
		m.totalBytes = total
		m.splitFiles = files
		m.totalFiles = totalFiles

		var percent float64
		if totalFiles > 0 {
			percent = float64(files) / float64(totalFiles)
		}
		return m, tea.Batch(m.progress.SetPercent(percent), m.scheduleTick())
	}

	return m, nil
}

func (m *Model) focusInput(index int) {
	m.focusIndex = index
	if index == 0 {
		m.sourceInput.Focus()
		m.configInput.Blur()
	} else {
		m.sourceInput.Blur()
		m.configInput.Focus()
	}
}

// appendEvents drains progress events collected by the manager's
// workers into the visible log, keeping only the last ten lines.
func (m *Model) appendEvents() {
	for _, event := range m.events.drain() {
		if event.Level == split.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{
			Message: event.Message,
			Level:   event.Level,
		})
	}
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// parseCmd runs Initialize in the background: it parses the listing
// and plans the tracks without writing anything.
func (m *Model) parseCmd() tea.Cmd {
	request := split.Request{
		SourcePath: m.sourceInput.Value(),
		ConfigPath: m.configInput.Value(),
	}

	settings := config.DefaultSettings()
	if m.playlist {
		settings.CreatePlaylist = true
	}

	events := m.events
	ctx := m.ctx

	return func() tea.Msg {
		manager := split.NewManager(settings, events.add)
		if err := manager.Initialize(ctx, request); err != nil {
			return parsedMsg{err: err}
		}

		return parsedMsg{
			summary: manager.AlbumSummary(),
			tracks:  manager.TrackSummaries(),
			manager: manager,
		}
	}
}

// exportCmd runs the actual cut in the background.
func (m *Model) exportCmd() tea.Cmd {
	manager := m.manager
	ctx := m.ctx

	return func() tea.Msg {
		if manager == nil {
			return exportedMsg{err: fmt.Errorf("nothing to export")}
		}

		err := manager.StartExport(ctx)
		written, total, files, totalFiles := manager.GetProgress()

		return exportedMsg{
			written:    written,
			total:      total,
			files:      files,
			totalFiles: totalFiles,
			err:        err,
		}
	}
}

// Run starts the UI in the alternate screen and blocks until the user
// quits.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
