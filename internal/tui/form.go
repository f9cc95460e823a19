package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zigazou/cliquetis/internal/config"
	"github.com/Zigazou/cliquetis/internal/types"
)

// formModel holds the live widgets for the first action's options. Field
// order follows the declaration order of the tool description.
type formModel struct {
	theme       Theme
	title       string
	description string
	actionName  string
	templates   []string
	output      types.OutputConfig

	fields []formField

	// focus indexes into fields; len(fields) is the action button.
	focus int
}

// formField is one live widget. The descriptor stays immutable; the field
// holds the mutable value.
type formField struct {
	desc types.FieldDescriptor

	// text and file fields
	input textinput.Model

	// list fields
	choices []string
	choice  int
	loading bool

	// boolean fields
	tri types.TriState
}

func newForm(tool *config.Tool, theme Theme) formModel {
	action := tool.First()

	form := formModel{
		theme:       theme,
		title:       tool.Title,
		description: tool.Description,
		actionName:  action.Name,
		templates:   action.Command,
		output:      action.Output,
	}

	for _, desc := range action.Options {
		form.fields = append(form.fields, newFormField(desc))
	}

	if len(form.fields) > 0 {
		form.fields[0].focusInput()
	}

	return form
}

func newFormField(desc types.FieldDescriptor) formField {
	field := formField{desc: desc, choice: -1}

	switch desc.Kind {
	case types.KindText, types.KindFile:
		input := textinput.New()
		input.Prompt = ""
		input.SetValue(desc.Default)
		field.input = input

	case types.KindList:
		field.choices = desc.Choices
		field.choice = indexOf(desc.Choices, desc.Default)
		field.loading = desc.Source != ""

	case types.KindBoolean:
		if desc.DefaultSet {
			if desc.DefaultOn {
				field.tri = types.TriOn
			} else {
				field.tri = types.TriOff
			}
		}
	}

	return field
}

func indexOf(values []string, value string) int {
	if value == "" {
		return -1
	}
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func (f *formField) focusInput() {
	if f.desc.Kind == types.KindText || f.desc.Kind == types.KindFile {
		f.input.Focus()
	}
}

func (f *formField) blurInput() {
	if f.desc.Kind == types.KindText || f.desc.Kind == types.KindFile {
		f.input.Blur()
	}
}

// value reads the field's current binding value. Only an unset tri-state
// boolean (or one configured with a null output) resolves Absent.
func (f *formField) value() types.Value {
	switch f.desc.Kind {
	case types.KindText, types.KindFile:
		return types.String(f.input.Value())
	case types.KindList:
		if f.choice >= 0 && f.choice < len(f.choices) {
			return types.String(f.choices[f.choice])
		}
		return types.String("")
	case types.KindBoolean:
		return f.tri.Resolve(f.desc.OnValue, f.desc.OffValue)
	default:
		return types.String("")
	}
}

// onButton reports whether focus sits on the action button.
func (m *formModel) onButton() bool {
	return m.focus == len(m.fields)
}

func (m *formModel) focusNext() {
	m.moveFocus(1)
}

func (m *formModel) moveFocus(delta int) {
	if m.focus < len(m.fields) {
		m.fields[m.focus].blurInput()
	}

	total := len(m.fields) + 1
	m.focus = (m.focus + delta + total) % total

	if m.focus < len(m.fields) {
		m.fields[m.focus].focusInput()
	}
}

func (m *formModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return nil
	}

	if m.focus >= len(m.fields) {
		return nil
	}
	field := &m.fields[m.focus]

	switch field.desc.Kind {
	case types.KindText, types.KindFile:
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(msg)
		return cmd

	case types.KindList:
		switch msg.String() {
		case "left":
			field.cycleChoice(-1)
		case "right", " ":
			field.cycleChoice(1)
		}
		return nil

	case types.KindBoolean:
		if msg.String() == " " {
			field.tri = field.tri.Next()
		}
		return nil
	}

	return nil
}

func (f *formField) cycleChoice(delta int) {
	if len(f.choices) == 0 {
		return
	}
	f.choice = (f.choice + delta + len(f.choices)) % len(f.choices)
}

// setChoices installs the result of a choice-source command.
func (m *formModel) setChoices(msg choicesLoadedMsg) {
	if msg.fieldIndex < 0 || msg.fieldIndex >= len(m.fields) {
		return
	}
	field := &m.fields[msg.fieldIndex]
	field.loading = false
	if msg.err != nil {
		field.choices = nil
		return
	}
	field.choices = msg.choices
	field.choice = indexOf(msg.choices, field.desc.Default)
}

// buildAction reads every widget once and freezes the submission.
func (m *formModel) buildAction() *types.Action {
	bindings := make([]types.Binding, 0, len(m.fields))
	for i := range m.fields {
		bindings = append(bindings, types.Binding{
			Name:  m.fields[i].desc.Key,
			Value: m.fields[i].value(),
		})
	}

	return &types.Action{
		Name:      m.actionName,
		Templates: m.templates,
		Bindings:  bindings,
		Output:    m.output,
	}
}
