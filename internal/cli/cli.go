// Package cli implements the non-interactive run mode: field values come
// from defaults and -e flags instead of the form, and results print to
// stdout.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Zigazou/cliquetis/internal/config"
	"github.com/Zigazou/cliquetis/internal/history"
	"github.com/Zigazou/cliquetis/internal/logger"
	"github.com/Zigazou/cliquetis/internal/runner"
	"github.com/Zigazou/cliquetis/internal/types"
)

// RunOptions configures one non-interactive run.
type RunOptions struct {
	FilePath string

	// ExtraVars are key=value pairs overriding field defaults; they map
	// directly onto binding values, so a boolean field takes its raw
	// output value here rather than a widget state.
	ExtraVars []string

	// NoHistory skips run recording.
	NoHistory bool
}

// Run loads the tool description, builds bindings without a form, executes
// the first action and prints the result.
func Run(opts RunOptions) error {
	tool, err := config.Load(opts.FilePath)
	if err != nil {
		return err
	}

	overrides, err := parseExtraVars(opts.ExtraVars)
	if err != nil {
		return err
	}

	actionConfig := tool.First()
	action := &types.Action{
		Name:      actionConfig.Name,
		Templates: actionConfig.Command,
		Bindings:  defaultBindings(actionConfig.Options, overrides),
		Output:    actionConfig.Output,
	}

	logger.Get().V(1).Info("running action", "tool", tool.Title, "action", action.Name)

	result, err := runner.Run(action)
	if err != nil {
		return err
	}

	if !opts.NoHistory {
		recordRun(tool.Title, action.Name, result)
	}

	return printResult(result)
}

// defaultBindings resolves every field from its descriptor default, then
// applies -e overrides by key.
func defaultBindings(options []types.FieldDescriptor, overrides map[string]string) []types.Binding {
	bindings := make([]types.Binding, 0, len(options))
	for _, option := range options {
		value := defaultValue(option)
		if override, ok := overrides[option.Key]; ok {
			value = types.String(override)
		}
		bindings = append(bindings, types.Binding{Name: option.Key, Value: value})
	}
	return bindings
}

func defaultValue(option types.FieldDescriptor) types.Value {
	if option.Kind == types.KindBoolean {
		state := types.TriUnset
		if option.DefaultSet {
			if option.DefaultOn {
				state = types.TriOn
			} else {
				state = types.TriOff
			}
		}
		return state.Resolve(option.OnValue, option.OffValue)
	}
	return types.String(option.Default)
}

func parseExtraVars(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid -e value %q, expected key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}

func recordRun(tool, action string, result *runner.Result) {
	if config.DatabasePath == "" {
		return
	}

	manager, err := history.NewManager(config.DatabasePath)
	if err != nil {
		logger.Get().Error(err, "history unavailable")
		return
	}
	defer manager.Close()

	entry := history.Entry{
		Timestamp:  time.Now(),
		Tool:       tool,
		Action:     action,
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

func printResult(result *runner.Result) error {
	switch result.Viewer {
	case "table":
		fmt.Print(FormatTable(result.Table))
		return nil

	case "json":
		encoded, err := json.MarshalIndent(result.JSON, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(highlightJSON(string(encoded), os.Stdout))
		return nil

	default:
		fmt.Print(result.Text)
		return nil
	}
}
