package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/logger"
)

const (
	sidebarWidth = 30
	gaugeCells   = 20

	defaultGaugeInterval = 3 * time.Second
)

// Options configures the dashboard
type Options struct {
	Theme         string
	GaugeInterval time.Duration
	Reloads       <-chan Reload
	Logger        *logger.Logger
}

// Model is the dashboard's bubbletea model
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	state  *console.State
	styles *Styles
	log    *logger.Logger

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model

	gaugeInterval time.Duration
	reloads       <-chan Reload

	width      int
	height     int
	ready      bool
	processing bool
	showHelp   bool
	opticLink  bool
	quitting   bool
}

// NewModel creates the dashboard around state. Cancelling ctx, or quitting,
// cancels any in-flight dispatch.
func NewModel(ctx context.Context, state *console.State, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	theme, _ := ThemeByName(opts.Theme)

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	interval := opts.GaugeInterval
	if interval <= 0 {
		interval = defaultGaugeInterval
	}

	ti := textinput.New()
	ti.Placeholder = "ENTER COMMAND..."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:           ctx,
		cancel:        cancel,
		state:         state,
		styles:        NewStyles(theme),
		log:           log.WithComponent("ui"),
		input:         ti,
		viewport:      viewport.New(80, 10),
		spinner:       sp,
		help:          help.New(),
		gaugeInterval: interval,
		reloads:       opts.Reloads,
	}
	m.spinner.Style = m.styles.Title
	m.syncLog()
	return m
}

// Init starts the gauge and the reload listener
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		gaugeTick(m.gaugeInterval),
		waitForReload(m.reloads),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case dispatchDoneMsg:
		return m.handleDispatchDone(msg)
	case gaugeTickMsg:
		m.state.Gauge.Step()
		return m, gaugeTick(m.gaugeInterval)
	case reloadMsg:
		return m.handleReload(Reload(msg))
	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncLog()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, keys.NextPanel):
		m.state.Selector.Next()
		m.layout()
		return m, nil
	case key.Matches(msg, keys.PrevPanel):
		m.state.Selector.Prev()
		m.layout()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case key.Matches(msg, keys.Optic):
		if m.state.Selector.Current() == console.Vision {
			m.opticLink = !m.opticLink
			m.layout()
		}
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.handleSubmit()
	}

	if m.processing {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit starts a dispatch from the active panel. Input is disabled
// until it resolves.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.processing {
		return m, nil
	}

	command := m.input.Value()
	if strings.TrimSpace(command) == "" {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.processing = true

	panel := m.state.Selector.Current()
	m.log.Debug("submitting from %s", panel.Code())

	return m, tea.Batch(
		dispatchCmd(m.ctx, m.state.Dispatcher, command, panel),
		m.spinner.Tick,
	)
}

// handleDispatchDone re-enables input and shows the new lines
func (m *Model) handleDispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	m.processing = false
	if msg.err != nil && !errors.Is(msg.err, console.ErrEmptyCommand) {
		m.log.Warn("dispatch rejected: %v", msg.err)
	}

	m.syncLog()
	m.viewport.GotoBottom()
	return m, m.input.Focus()
}

// handleReload applies new profiles and theme
func (m *Model) handleReload(r Reload) (tea.Model, tea.Cmd) {
	m.state.Dispatcher.SetProfiles(r.Profiles)
	if theme, ok := ThemeByName(r.Theme); ok {
		m.styles = NewStyles(theme)
		m.spinner.Style = m.styles.Title
	}
	m.log.Info("configuration reloaded (theme=%s)", r.Theme)
	m.syncLog()
	return m, waitForReload(m.reloads)
}

// handleQuit cancels in-flight work and exits
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// syncLog copies the log store into the viewport, keeping the scroll pinned
// to the bottom when it already was
func (m *Model) syncLog() {
	atBottom := m.viewport.AtBottom()

	entries := m.state.Logs.Entries()
	rendered := make([]string, 0, len(entries))
	for _, entry := range entries {
		rendered = append(rendered, m.renderLogLine(entry))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))

	if atBottom {
		m.viewport.GotoBottom()
	}
}

// layout sizes the viewport for the active panel
func (m *Model) layout() {
	if !m.ready {
		return
	}

	mainWidth := m.width - sidebarWidth - 4
	if mainWidth < 20 {
		mainWidth = 20
	}

	// header, footer, help, panel title, input and terminal border
	chrome := 2 + 2 + 1 + 3 + 1 + 2
	if m.showHelp {
		chrome += 3
	}

	height := m.height - chrome - m.panelSectionHeight()
	if height < 3 {
		height = 3
	}

	m.viewport.Width = mainWidth - 2
	m.viewport.Height = height
	m.input.Width = mainWidth - 6
	m.syncLog()
}

// Run launches the dashboard and blocks until it exits
func Run(ctx context.Context, state *console.State, opts Options) error {
	model := NewModel(ctx, state, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
