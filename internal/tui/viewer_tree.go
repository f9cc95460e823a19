package tui

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Zigazou/cliquetis/internal/render"
	"github.com/Zigazou/cliquetis/internal/runner"
	"github.com/Zigazou/cliquetis/internal/types"
)

// treeNode is one inserted node of the json viewer.
type treeNode struct {
	label    string
	values   []string
	open     bool
	depth    int
	children []*treeNode
}

// treeViewer displays decoded JSON as a collapsible tree. It implements
// render.Inserter: the walk builds the node graph, the viewer only
// flattens whatever is currently unfolded.
type treeViewer struct {
	theme Theme
	raw   []byte

	labelHeading string
	columns      []string

	roots []*treeNode
	byID  map[render.NodeID]*treeNode
	nextID int

	cursor int
	top    int
}

func newTreeViewer(result *runner.Result, output types.OutputConfig, theme Theme) *treeViewer {
	v := &treeViewer{
		theme:        theme,
		raw:          result.Raw,
		labelHeading: "tree",
		columns:      []string{"value"},
		byID:         make(map[render.NodeID]*treeNode),
	}

	if len(output.KeyValues) > 0 {
		v.labelHeading = output.KeyValues[0]
		v.columns = output.KeyValues[1:]
	}

	render.Walk(result.JSON, render.Options{
		Collapsed: output.Collapsed,
		KeyValues: output.KeyValues,
	}, v)

	return v
}

// Insert implements render.Inserter.
func (t *treeViewer) Insert(parent render.NodeID, label string, values []string, open bool) render.NodeID {
	node := &treeNode{label: label, values: values, open: open}

	if parent == render.Root {
		t.roots = append(t.roots, node)
	} else if parentNode, ok := t.byID[parent]; ok {
		node.depth = parentNode.depth + 1
		parentNode.children = append(parentNode.children, node)
	}

	t.nextID++
	id := render.NodeID(strconv.Itoa(t.nextID))
	t.byID[id] = node
	return id
}

// visible flattens the tree depth first, skipping folded subtrees.
func (t *treeViewer) visible() []*treeNode {
	nodes := make([]*treeNode, 0, len(t.byID))
	var descend func(node *treeNode)
	descend = func(node *treeNode) {
		nodes = append(nodes, node)
		if !node.open {
			return
		}
		for _, child := range node.children {
			descend(child)
		}
	}
	for _, root := range t.roots {
		descend(root)
	}
	return nodes
}

func (t *treeViewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	nodes := t.visible()

	switch msg.String() {
	case "up", "k":
		t.moveCursor(-1, len(nodes))
	case "down", "j":
		t.moveCursor(1, len(nodes))
	case "pgup":
		t.moveCursor(-10, len(nodes))
	case "pgdown":
		t.moveCursor(10, len(nodes))
	case "home", "g":
		t.cursor = 0
	case "end", "G":
		t.cursor = len(nodes) - 1
	case "enter", " ":
		if t.cursor < len(nodes) && len(nodes[t.cursor].children) > 0 {
			nodes[t.cursor].open = !nodes[t.cursor].open
		}
	case "c":
		_ = clipboard.WriteAll(string(t.raw))
	}
	return nil
}

func (t *treeViewer) moveCursor(delta, total int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= total {
		t.cursor = total - 1
	}
}

func (t *treeViewer) view(width, height int) string {
	nodes := t.visible()
	if t.cursor >= len(nodes) && len(nodes) > 0 {
		t.cursor = len(nodes) - 1
	}

	pageSize := height - 4
	if pageSize < 1 {
		pageSize = 1
	}
	if t.cursor < t.top {
		t.top = t.cursor
	} else if t.cursor >= t.top+pageSize {
		t.top = t.cursor - pageSize + 1
	}

	labelWidth := t.labelColumnWidth(nodes)

	var b strings.Builder
	b.WriteString(t.renderHeader(labelWidth))
	b.WriteString("\n")

	end := t.top + pageSize
	if end > len(nodes) {
		end = len(nodes)
	}
	for index := t.top; index < end; index++ {
		b.WriteString(t.renderNode(nodes[index], index, labelWidth))
		if index < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (t *treeViewer) labelColumnWidth(nodes []*treeNode) int {
	width := runewidth.StringWidth(t.labelHeading)
	for _, node := range nodes {
		w := node.depth*2 + 2 + runewidth.StringWidth(node.label)
		if w > width {
			width = w
		}
	}
	return width
}

func (t *treeViewer) renderHeader(labelWidth int) string {
	cells := []string{pad(t.labelHeading, labelWidth, false)}
	cells = append(cells, t.columns...)
	return t.theme.Title.Render(strings.Join(cells, "  "))
}

func (t *treeViewer) renderNode(node *treeNode, index, labelWidth int) string {
	marker := "  "
	if len(node.children) > 0 {
		if node.open {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	label := strings.Repeat("  ", node.depth) + marker + node.label
	line := pad(label, labelWidth, false)
	if len(node.values) > 0 {
		line += "  " + strings.Join(node.values, "  ")
	}

	if index == t.cursor {
		return t.theme.Focused.Render("> ") + line
	}
	return "  " + line
}
