package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/Zigazou/cliquetis/internal/filter"
	"github.com/Zigazou/cliquetis/internal/ojson"
	"github.com/Zigazou/cliquetis/internal/types"
)

// Tool is a parsed tool description: the static configuration the form and
// the runner are built from.
type Tool struct {
	Title       string
	Description string
	Actions     []ActionConfig
}

// ActionConfig describes one action: its command templates, its form
// options in declaration order, and its output configuration. The engine
// currently drives exactly the first action.
type ActionConfig struct {
	Name    string
	Command []string
	Options []types.FieldDescriptor
	Output  types.OutputConfig
}

// First returns the action driving the engine.
func (t *Tool) First() *ActionConfig {
	return &t.Actions[0]
}

// Load reads and validates a tool description. JSON documents may carry
// lines starting with # (stripped before parsing) as well as // and /* */
// comments; .yaml/.yml files are parsed as YAML.
func Load(path string) (*Tool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool description: %w", err)
	}

	var value any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		value, err = decodeYAML(raw)
	default:
		value, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, &types.ConfigError{Reason: path, Err: err}
	}

	tool, err := buildTool(value)
	if err != nil {
		return nil, err
	}
	return tool, nil
}

// decodeJSON strips #-prefixed lines, then tolerates jsonc comments and
// trailing commas before strict decoding.
func decodeJSON(raw []byte) (any, error) {
	kept := make([][]byte, 0, 32)
	for _, line := range bytes.Split(raw, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		kept = append(kept, line)
	}

	return ojson.Decode(jsonc.ToJSON(bytes.Join(kept, []byte("\n"))))
}

func buildTool(value any) (*Tool, error) {
	doc, ok := value.(*ojson.Object)
	if !ok {
		return nil, &types.ConfigError{Reason: "top level must be an object"}
	}

	tool := &Tool{}
	var err error
	if tool.Title, err = requiredString(doc, "title"); err != nil {
		return nil, err
	}
	if tool.Description, err = requiredString(doc, "description"); err != nil {
		return nil, err
	}

	rawActions, ok := doc.Get("actions")
	if !ok {
		return nil, &types.ConfigError{Reason: "missing actions"}
	}
	actions, ok := rawActions.([]any)
	if !ok || len(actions) == 0 {
		return nil, &types.ConfigError{Reason: "actions must be a non-empty list"}
	}

	for index, rawAction := range actions {
		action, err := buildAction(rawAction)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", index, err)
		}
		tool.Actions = append(tool.Actions, *action)
	}

	return tool, nil
}

func buildAction(value any) (*ActionConfig, error) {
	obj, ok := value.(*ojson.Object)
	if !ok {
		return nil, &types.ConfigError{Reason: "action must be an object"}
	}

	action := &ActionConfig{}
	var err error
	if action.Name, err = requiredString(obj, "name"); err != nil {
		return nil, err
	}

	rawCommand, ok := obj.Get("command")
	if !ok {
		return nil, &types.ConfigError{Reason: "missing command"}
	}
	if action.Command, err = stringList(rawCommand); err != nil {
		return nil, &types.ConfigError{Reason: "command", Err: err}
	}
	if len(action.Command) == 0 {
		return nil, &types.ConfigError{Reason: "command must be a non-empty list"}
	}

	rawOptions, ok := obj.Get("options")
	if !ok {
		return nil, &types.ConfigError{Reason: "missing options"}
	}
	options, ok := rawOptions.(*ojson.Object)
	if !ok {
		return nil, &types.ConfigError{Reason: "options must be an object"}
	}
	for _, member := range options.Members {
		field, err := buildField(member.Key, member.Value)
		if err != nil {
			return nil, err
		}
		action.Options = append(action.Options, *field)
	}

	rawOutput, ok := obj.Get("output")
	if !ok {
		return nil, &types.ConfigError{Reason: "missing output"}
	}
	if action.Output, err = buildOutput(rawOutput); err != nil {
		return nil, err
	}

	return action, nil
}

func buildField(key string, value any) (*types.FieldDescriptor, error) {
	obj, ok := value.(*ojson.Object)
	if !ok {
		return nil, &types.ConfigError{Reason: "option " + key + " must be an object"}
	}

	kindName, err := requiredString(obj, "type")
	if err != nil {
		return nil, fmt.Errorf("option %s: %w", key, err)
	}
	kind, err := types.ParseFieldKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("option %s: %w", key, err)
	}

	field := &types.FieldDescriptor{Key: key, Kind: kind}
	if field.Name, err = requiredString(obj, "name"); err != nil {
		return nil, fmt.Errorf("option %s: %w", key, err)
	}

	switch kind {
	case types.KindText, types.KindFile:
		field.Default = optionalString(obj, "default")

	case types.KindList:
		field.Default = optionalString(obj, "default")
		if rawValues, ok := obj.Get("values"); ok {
			if field.Choices, err = stringList(rawValues); err != nil {
				return nil, &types.ConfigError{Reason: "option " + key + " values", Err: err}
			}
		} else if rawSource, ok := obj.Get("source"); ok {
			if field.Source, ok = rawSource.(string); !ok {
				return nil, &types.ConfigError{Reason: "option " + key + " source must be a string"}
			}
		}

	case types.KindBoolean:
		rawOn, ok := obj.Get("true")
		if !ok {
			return nil, &types.ConfigError{Reason: "option " + key + " missing true value"}
		}
		rawOff, ok := obj.Get("false")
		if !ok {
			return nil, &types.ConfigError{Reason: "option " + key + " missing false value"}
		}
		field.OnValue = scalarValue(rawOn)
		field.OffValue = scalarValue(rawOff)

		if rawDefault, ok := obj.Get("default"); ok {
			on, ok := rawDefault.(bool)
			if !ok {
				return nil, &types.ConfigError{Reason: "option " + key + " default must be a boolean"}
			}
			field.DefaultOn = on
			field.DefaultSet = true
		}
	}

	return field, nil
}

func buildOutput(value any) (types.OutputConfig, error) {
	obj, ok := value.(*ojson.Object)
	if !ok {
		return types.OutputConfig{}, &types.ConfigError{Reason: "output must be an object"}
	}

	output := types.OutputConfig{
		Viewer:    optionalString(obj, "viewer"),
		Separator: optionalString(obj, "separator"),
		Filter:    optionalString(obj, "filter"),
	}

	if rawGroupBy, ok := obj.Get("group-by"); ok {
		number, ok := rawGroupBy.(json.Number)
		if !ok {
			return output, &types.ConfigError{Reason: "group-by must be a number"}
		}
		column, err := strconv.Atoi(number.String())
		if err != nil {
			return output, &types.ConfigError{Reason: "group-by must be an integer", Err: err}
		}
		output.GroupBy = &column
	}

	if rawCollapsed, ok := obj.Get("collapsed"); ok {
		collapsed, ok := rawCollapsed.(bool)
		if !ok {
			return output, &types.ConfigError{Reason: "collapsed must be a boolean"}
		}
		output.Collapsed = collapsed
	}

	if rawKeyValues, ok := obj.Get("key-values"); ok {
		keyValues, err := stringList(rawKeyValues)
		if err != nil {
			return output, &types.ConfigError{Reason: "key-values", Err: err}
		}
		output.KeyValues = keyValues
	}

	if err := filter.Validate(output.Filter); err != nil {
		return output, &types.ConfigError{Reason: "filter", Err: err}
	}

	return output, nil
}

func requiredString(obj *ojson.Object, key string) (string, error) {
	value, ok := obj.Get(key)
	if !ok {
		return "", &types.ConfigError{Reason: "missing " + key}
	}
	s, ok := value.(string)
	if !ok {
		return "", &types.ConfigError{Reason: key + " must be a string"}
	}
	return s, nil
}

func optionalString(obj *ojson.Object, key string) string {
	value, ok := obj.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

func stringList(value any) ([]string, error) {
	arr, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("must be a list of strings")
	}
	list := make([]string, 0, len(arr))
	for _, element := range arr {
		s, ok := element.(string)
		if !ok {
			return nil, fmt.Errorf("must be a list of strings")
		}
		list = append(list, s)
	}
	return list, nil
}

// scalarValue maps a configured on/off output to a binding value. JSON
// null means the state resolves to Absent, removing the argument.
func scalarValue(value any) types.Value {
	switch v := value.(type) {
	case nil:
		return types.Absent()
	case string:
		return types.String(v)
	case json.Number:
		return types.String(v.String())
	case bool:
		return types.String(strconv.FormatBool(v))
	default:
		return types.String(fmt.Sprintf("%v", v))
	}
}
