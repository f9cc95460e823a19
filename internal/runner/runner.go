// Package runner executes an action's expanded argument vector as a child
// process and interprets the captured output for the configured viewer.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Zigazou/cliquetis/internal/expand"
	"github.com/Zigazou/cliquetis/internal/filter"
	"github.com/Zigazou/cliquetis/internal/ojson"
	"github.com/Zigazou/cliquetis/internal/tabular"
	"github.com/Zigazou/cliquetis/internal/types"
)

// Result is the fully materialized outcome of one run. Exactly one of
// Table, JSON or Text carries the viewer payload, selected by Viewer.
type Result struct {
	Viewer string

	Text  string
	Table *tabular.Data
	JSON  any

	// Raw is the captured stdout, kept for saving and clipboard copy.
	Raw []byte

	// ExitCode and Duration are informational: a non-zero exit does not
	// change how the output is interpreted.
	ExitCode int
	Duration time.Duration
	Argv     []string
}

// Run expands the action, executes it, blocks until the process exits and
// all stdout has been captured, then dispatches on the configured viewer.
// Standard error is not inspected; only a hard launch failure or
// undecodable output for a structured viewer returns an error.
func Run(action *types.Action) (*Result, error) {
	argv := expand.Expand(action.Templates, action.Bindings)
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is empty after expansion")
	}

	start := time.Now()
	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", argv[0], err)
		}
		exitCode = exitErr.ExitCode()
	}

	result := &Result{
		Viewer:   action.Output.Viewer,
		Raw:      stdout.Bytes(),
		ExitCode: exitCode,
		Duration: time.Since(start),
		Argv:     argv,
	}

	switch action.Output.Viewer {
	case "table":
		data := tabular.New()
		if err := data.ImportRaw(result.Raw, action.Output.Separator, action.Output.GroupBy); err != nil {
			return nil, err
		}
		result.Table = data

	case "json":
		body, err := filter.Apply(result.Raw, action.Output.Filter)
		if err != nil {
			return nil, err
		}
		value, err := ojson.Decode(body)
		if err != nil {
			return nil, err
		}
		result.JSON = value

	default:
		result.Text = string(result.Raw)
	}

	return result, nil
}
