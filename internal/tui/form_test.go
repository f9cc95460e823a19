package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zigazou/cliquetis/internal/config"
	"github.com/Zigazou/cliquetis/internal/types"
)

func sampleTool() *config.Tool {
	return &config.Tool{
		Title:       "Disk usage",
		Description: "Show disk usage",
		Actions: []config.ActionConfig{
			{
				Name:    "Analyze",
				Command: []string{"du", "{human}", "{dir}"},
				Options: []types.FieldDescriptor{
					{Key: "dir", Kind: types.KindFile, Name: "Directory", Default: "/tmp"},
					{Key: "depth", Kind: types.KindList, Name: "Depth",
						Choices: []string{"1", "2", "3"}, Default: "2"},
					{Key: "human", Kind: types.KindBoolean, Name: "Human readable",
						OnValue: types.String("-h"), OffValue: types.Absent()},
				},
				Output: types.OutputConfig{Viewer: "table"},
			},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewForm_DefaultsApplied(t *testing.T) {
	form := newForm(sampleTool(), DefaultTheme())

	if len(form.fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(form.fields))
	}
	if form.fields[0].input.Value() != "/tmp" {
		t.Errorf("Expected default /tmp, got %q", form.fields[0].input.Value())
	}
	if form.fields[1].choice != 1 {
		t.Errorf("Expected default choice index 1, got %d", form.fields[1].choice)
	}
	if form.fields[2].tri != types.TriUnset {
		t.Errorf("Expected boolean without default to start unset, got %v", form.fields[2].tri)
	}
}

func TestForm_FocusCycles(t *testing.T) {
	form := newForm(sampleTool(), DefaultTheme())

	// 3 fields + button.
	positions := []int{1, 2, 3, 0}
	for _, expected := range positions {
		form.moveFocus(1)
		if form.focus != expected {
			t.Fatalf("Expected focus %d, got %d", expected, form.focus)
		}
	}
	if form.onButton() {
		t.Error("Expected focus back on first field, not button")
	}
}

func TestForm_BooleanCyclesTriState(t *testing.T) {
	form := newForm(sampleTool(), DefaultTheme())
	form.focus = 2

	states := []types.TriState{types.TriOn, types.TriOff, types.TriUnset}
	for _, expected := range states {
		form.handleKey(keyMsg(" "))
		if form.fields[2].tri != expected {
			t.Fatalf("Expected state %v, got %v", expected, form.fields[2].tri)
		}
	}
}

func TestForm_ListCycling(t *testing.T) {
	form := newForm(sampleTool(), DefaultTheme())
	form.focus = 1

	form.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if form.fields[1].choice != 2 {
		t.Errorf("Expected choice 2, got %d", form.fields[1].choice)
	}

	form.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if form.fields[1].choice != 0 {
		t.Errorf("Expected wrap to 0, got %d", form.fields[1].choice)
	}

	form.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if form.fields[1].choice != 2 {
		t.Errorf("Expected wrap back to 2, got %d", form.fields[1].choice)
	}
}

func TestForm_BuildAction(t *testing.T) {
	form := newForm(sampleTool(), DefaultTheme())

	action := form.buildAction()

	if action.Name != "Analyze" {
		t.Errorf("Expected action Analyze, got %q", action.Name)
	}
	if len(action.Bindings) != 3 {
		t.Fatalf("Expected 3 bindings, got %d", len(action.Bindings))
	}
	if action.Bindings[0].Value.String() != "/tmp" {
		t.Errorf("Expected dir binding /tmp, got %q", action.Bindings[0].Value.String())
	}
	if action.Bindings[1].Value.String() != "2" {
		t.Errorf("Expected depth binding 2, got %q", action.Bindings[1].Value.String())
	}
	if !action.Bindings[2].Value.IsAbsent() {
		t.Error("Expected unset boolean binding to be absent")
	}
}

func TestForm_SetChoices(t *testing.T) {
	tool := sampleTool()
	tool.Actions[0].Options[1] = types.FieldDescriptor{
		Key: "depth", Kind: types.KindList, Name: "Depth",
		Source: "seq 1 3", Default: "2",
	}
	form := newForm(tool, DefaultTheme())

	if !form.fields[1].loading {
		t.Error("Expected source-backed field to start loading")
	}

	form.setChoices(choicesLoadedMsg{fieldIndex: 1, choices: []string{"1", "2", "3"}})

	if form.fields[1].loading {
		t.Error("Expected loading cleared")
	}
	if form.fields[1].choice != 1 {
		t.Errorf("Expected default selected after load, got %d", form.fields[1].choice)
	}
}
