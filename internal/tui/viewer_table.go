package tui

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Zigazou/cliquetis/internal/render"
	"github.com/Zigazou/cliquetis/internal/runner"
	"github.com/Zigazou/cliquetis/internal/tabular"
)

// tableViewer displays a tabular model. Rows are produced through the
// render.TableSink capability, so the viewer never inspects the model's
// grouping shape directly.
type tableViewer struct {
	theme Theme
	raw   []byte
	types []tabular.ColumnType

	headings []string
	widths   []int
	rows     []tableRow

	cursor int
	top    int

	nextID int
}

// tableRow is one rendered line: a group header or a data row.
type tableRow struct {
	group  bool
	indent bool
	label  string
	cells  []string
}

func newTableViewer(result *runner.Result, theme Theme) *tableViewer {
	v := &tableViewer{
		theme: theme,
		raw:   result.Raw,
		types: result.Table.Types,
	}
	render.WalkTable(result.Table, v)
	return v
}

// Insert implements render.TableSink.
func (t *tableViewer) Insert(parent render.NodeID, label string, values []string, open bool) render.NodeID {
	t.rows = append(t.rows, tableRow{
		group:  values == nil,
		indent: parent != render.Root,
		label:  label,
		cells:  values,
	})
	t.nextID++
	return render.NodeID(strconv.Itoa(t.nextID))
}

// SetColumnHeading implements render.TableSink.
func (t *tableViewer) SetColumnHeading(column int, name string) {
	for len(t.headings) <= column {
		t.headings = append(t.headings, "")
	}
	t.headings[column] = name
}

// SetColumnWidth implements render.TableSink.
func (t *tableViewer) SetColumnWidth(column int, width int) {
	for len(t.widths) <= column {
		t.widths = append(t.widths, 0)
	}
	t.widths[column] = width
}

func (t *tableViewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		t.moveCursor(-1)
	case "down", "j":
		t.moveCursor(1)
	case "pgup":
		t.moveCursor(-10)
	case "pgdown":
		t.moveCursor(10)
	case "home", "g":
		t.cursor = 0
	case "end", "G":
		t.cursor = len(t.rows) - 1
	case "c":
		_ = clipboard.WriteAll(string(t.raw))
	}
	return nil
}

func (t *tableViewer) moveCursor(delta int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
}

func (t *tableViewer) view(width, height int) string {
	pageSize := height - 4
	if pageSize < 1 {
		pageSize = 1
	}

	if t.cursor < t.top {
		t.top = t.cursor
	} else if t.cursor >= t.top+pageSize {
		t.top = t.cursor - pageSize + 1
	}

	var b strings.Builder
	b.WriteString(t.renderHeader())
	b.WriteString("\n")

	end := t.top + pageSize
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for index := t.top; index < end; index++ {
		b.WriteString(t.renderRow(index))
		if index < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (t *tableViewer) renderHeader() string {
	cells := make([]string, 0, len(t.headings))
	for column, heading := range t.headings {
		cells = append(cells, pad(heading, t.columnWidth(column), false))
	}
	return t.theme.Title.Render(strings.Join(cells, "  "))
}

func (t *tableViewer) renderRow(index int) string {
	row := t.rows[index]

	var line string
	if row.group {
		line = t.theme.Group.Render(row.label)
	} else {
		cells := make([]string, 0, len(row.cells))
		for column, cell := range row.cells {
			alignRight := column < len(t.types) && t.types[column] == tabular.Number
			cells = append(cells, pad(cell, t.columnWidth(column), alignRight))
		}
		line = strings.Join(cells, "  ")
		if row.indent {
			line = "  " + line
		}
	}

	if index == t.cursor {
		return t.theme.Focused.Render("> ") + line
	}
	return "  " + line
}

func (t *tableViewer) columnWidth(column int) int {
	if column < len(t.widths) {
		return t.widths[column]
	}
	return 0
}

// pad fits a cell into its column width, right-aligning numeric columns.
func pad(cell string, width int, alignRight bool) string {
	w := runewidth.StringWidth(cell)
	if w >= width {
		return runewidth.Truncate(cell, width, "…")
	}
	filler := strings.Repeat(" ", width-w)
	if alignRight {
		return filler + cell
	}
	return cell + filler
}
