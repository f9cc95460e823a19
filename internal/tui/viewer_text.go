package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zigazou/cliquetis/internal/runner"
)

// textViewer shows raw process output in a scrollable viewport.
type textViewer struct {
	theme Theme
	raw   []byte
	port  viewport.Model
}

func newTextViewer(result *runner.Result, theme Theme) *textViewer {
	port := viewport.New(80, 20)
	port.SetContent(result.Text)
	return &textViewer{theme: theme, raw: result.Raw, port: port}
}

func (t *textViewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "c" {
		_ = clipboard.WriteAll(string(t.raw))
		return nil
	}

	var cmd tea.Cmd
	t.port, cmd = t.port.Update(msg)
	return cmd
}

func (t *textViewer) view(width, height int) string {
	if width > 4 && height > 4 {
		t.port.Width = width - 4
		t.port.Height = height - 4
	}
	return t.port.View()
}
