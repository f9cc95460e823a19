package types

// FieldKind identifies which widget an option descriptor maps to.
// The set is closed: descriptors are matched by kind at form-build time,
// never by reflective name lookup.
type FieldKind int

const (
	KindText FieldKind = iota
	KindFile
	KindList
	KindBoolean
)

// ParseFieldKind converts a configuration "type" string to a FieldKind.
func ParseFieldKind(s string) (FieldKind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "file":
		return KindFile, nil
	case "list":
		return KindList, nil
	case "boolean":
		return KindBoolean, nil
	default:
		return 0, &ConfigError{Reason: "unknown option type: " + s}
	}
}

// String returns the configuration spelling of the kind.
func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFile:
		return "file"
	case KindList:
		return "list"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// FieldDescriptor declares one form input. It is built once from the static
// configuration and never mutated; the live widget holds the current value.
type FieldDescriptor struct {
	Key  string
	Kind FieldKind
	Name string

	// Default is the initial value for text, file and list fields.
	Default string

	// Choices holds the fixed value list for list fields.
	Choices []string

	// Source is a shell command whose stdout lines become the choices of a
	// list field. Exclusive with Choices.
	Source string

	// OnValue and OffValue are the resolved outputs of a boolean field.
	// Either may be Absent when the configuration uses null.
	OnValue  Value
	OffValue Value

	// DefaultOn selects the initial boolean state when DefaultSet is true.
	DefaultOn  bool
	DefaultSet bool
}

// Binding is one resolved (name, value) pair read from a live widget at
// submission time. Bindings keep declaration order; the expander relies on
// deterministic iteration.
type Binding struct {
	Name  string
	Value Value
}

// OutputConfig selects and parameterizes the viewer for an action's output.
type OutputConfig struct {
	// Viewer is "table", "json" or anything else for the multiline viewer.
	Viewer string

	// Separator splits table rows into cells. Empty means tab.
	Separator string

	// GroupBy is the column index consumed by table grouping, nil when the
	// table stays flat.
	GroupBy *int

	// Collapsed makes json tree containers start folded.
	Collapsed bool

	// KeyValues lists the field names of the repeated-record shortcut: the
	// first name labels the node, the rest become row values.
	KeyValues []string

	// Filter is an optional JMESPath expression applied to json output
	// before rendering.
	Filter string
}

// Action is an immutable record of one form submission. It is consumed
// exactly once by the runner and never reused.
type Action struct {
	Name      string
	Templates []string
	Bindings  []Binding
	Output    OutputConfig
}
