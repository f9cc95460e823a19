// Package tui implements the interactive form and the three result
// viewers on top of bubbletea. It consumes the core engine (expand,
// runner, tabular, render) and never the other way around.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zigazou/cliquetis/internal/config"
	"github.com/Zigazou/cliquetis/internal/history"
	"github.com/Zigazou/cliquetis/internal/logger"
	"github.com/Zigazou/cliquetis/internal/runner"
)

// Mode represents the current TUI screen
type Mode int

const (
	ModeForm Mode = iota
	ModeRunning
	ModeViewer
)

// viewer is one result screen. Constructors receive the theme explicitly.
type viewer interface {
	handleKey(msg tea.KeyMsg) tea.Cmd
	view(width, height int) string
}

// Model is the root TUI state.
type Model struct {
	tool  *config.Tool
	theme Theme
	mode  Mode

	width  int
	height int

	form   formModel
	result *runner.Result
	active viewer

	statusMsg string

	// runErr aborts the program: a failed run yields no viewer.
	runErr error

	historyPath string
}

// New builds the root model for a loaded tool description.
func New(tool *config.Tool, theme Theme) Model {
	return Model{
		tool:        tool,
		theme:       theme,
		mode:        ModeForm,
		form:        newForm(tool, theme),
		historyPath: config.DatabasePath,
	}
}

// Err returns the fatal run error, if any, once the program has finished.
func (m Model) Err() error {
	return m.runErr
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.loadChoiceSources()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case choicesLoadedMsg:
		m.form.setChoices(msg)
		return m, nil

	case runResultMsg:
		m.result = msg.result
		m.active = newViewerFor(msg.result, m.tool.First().Output, m.theme)
		m.mode = ModeViewer
		m.statusMsg = ""
		m.recordRun(msg.result)
		return m, nil

	case runErrorMsg:
		m.runErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeForm:
		switch msg.String() {
		case "esc":
			// Cancel: no action is run.
			return m, tea.Quit
		case "enter":
			if m.form.onButton() {
				return m.submit()
			}
			m.form.focusNext()
			return m, nil
		case "ctrl+s":
			return m.submit()
		default:
			cmd := m.form.handleKey(msg)
			return m, cmd
		}

	case ModeRunning:
		// The child process is not cancellable; ignore input until done.
		return m, nil

	case ModeViewer:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		default:
			cmd := m.active.handleKey(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	action := m.form.buildAction()
	m.mode = ModeRunning
	m.statusMsg = "Running " + action.Name + "..."
	return m, runAction(action)
}

func (m *Model) recordRun(result *runner.Result) {
	if m.historyPath == "" {
		return
	}

	manager, err := history.NewManager(m.historyPath)
	if err != nil {
		logger.Get().Error(err, "history unavailable")
		return
	}
	defer manager.Close()

	entry := history.Entry{
		Timestamp:  time.Now(),
		Tool:       m.tool.Title,
		Action:     m.tool.First().Name,
		Argv:       result.Argv,
		Viewer:     result.Viewer,
		ExitCode:   result.ExitCode,
		DurationMs: result.Duration.Milliseconds(),
		OutputSize: len(result.Raw),
	}
	if err := manager.Add(entry); err != nil {
		logger.Get().Error(err, "failed to record run")
	}
}

// Run starts the TUI for a tool description and blocks until it exits.
func Run(tool *config.Tool, theme Theme) error {
	model := New(tool, theme)

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
