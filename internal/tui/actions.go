package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zigazou/cliquetis/internal/runner"
	"github.com/Zigazou/cliquetis/internal/types"
)

type runResultMsg struct {
	result *runner.Result
}

type runErrorMsg struct {
	err error
}

type choicesLoadedMsg struct {
	fieldIndex int
	choices    []string
	err        error
}

// runAction executes the submitted action on the command goroutine. The
// core call blocks until the child process exits; the event loop stays
// responsive and receives the result as a message.
func runAction(action *types.Action) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.Run(action)
		if err != nil {
			return runErrorMsg{err: err}
		}
		return runResultMsg{result: result}
	}
}

// loadChoiceSources starts one command per list field whose choices come
// from a shell command.
func (m *formModel) loadChoiceSources() tea.Cmd {
	var cmds []tea.Cmd
	for index := range m.fields {
		field := m.fields[index]
		if field.desc.Source == "" {
			continue
		}
		source := field.desc.Source
		fieldIndex := index
		cmds = append(cmds, func() tea.Msg {
			choices, err := runner.ChoiceSource(source)
			return choicesLoadedMsg{fieldIndex: fieldIndex, choices: choices, err: err}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// newViewerFor selects and constructs the viewer for a run result. The
// theme is threaded explicitly; viewers hold no global style state.
func newViewerFor(result *runner.Result, output types.OutputConfig, theme Theme) viewer {
	switch result.Viewer {
	case "table":
		return newTableViewer(result, theme)
	case "json":
		return newTreeViewer(result, output, theme)
	default:
		return newTextViewer(result, theme)
	}
}
