package runner

import (
	"errors"
	"reflect"
	"runtime"
	"testing"

	"github.com/Zigazou/cliquetis/internal/types"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests rely on sh")
	}
}

func shellAction(script string, output types.OutputConfig) *types.Action {
	return &types.Action{
		Name:      "test",
		Templates: []string{"sh", "-c", script},
		Output:    output,
	}
}

func TestRun_MultilineCapturesStdout(t *testing.T) {
	skipWithoutShell(t)

	result, err := Run(shellAction(`printf 'hello\nworld\n'`, types.OutputConfig{Viewer: "multiline"}))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Text != "hello\nworld\n" {
		t.Errorf("Expected captured text, got %q", result.Text)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
}

func TestRun_NonZeroExitStillProducesResult(t *testing.T) {
	skipWithoutShell(t)

	result, err := Run(shellAction(`printf 'partial'; exit 3`, types.OutputConfig{Viewer: "multiline"}))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", result.ExitCode)
	}
	if result.Text != "partial" {
		t.Errorf("Expected output kept on failure, got %q", result.Text)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	action := &types.Action{
		Templates: []string{"/nonexistent/binary/cliquetis-test"},
		Output:    types.OutputConfig{Viewer: "multiline"},
	}

	if _, err := Run(action); err == nil {
		t.Error("Expected launch failure error")
	}
}

func TestRun_TableViewer(t *testing.T) {
	skipWithoutShell(t)

	result, err := Run(shellAction(`printf 'name\tsize\na\t1\nb\t2\n'`, types.OutputConfig{Viewer: "table"}))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Table == nil {
		t.Fatal("Expected table payload")
	}
	if !reflect.DeepEqual(result.Table.Headings, []string{"name", "size"}) {
		t.Errorf("Unexpected headings: %v", result.Table.Headings)
	}
	if len(result.Table.Rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(result.Table.Rows))
	}
}

func TestRun_JSONViewer(t *testing.T) {
	skipWithoutShell(t)

	result, err := Run(shellAction(`printf '{"a": 1}'`, types.OutputConfig{Viewer: "json"}))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.JSON == nil {
		t.Fatal("Expected JSON payload")
	}
}

func TestRun_MalformedJSONPropagates(t *testing.T) {
	skipWithoutShell(t)

	_, err := Run(shellAction(`printf 'not json'`, types.OutputConfig{Viewer: "json"}))

	var decodeErr *types.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
}

func TestRun_ArgumentExpansion(t *testing.T) {
	skipWithoutShell(t)

	action := &types.Action{
		Templates: []string{"sh", "-c", `printf '%s' "$0"`, "{word}"},
		Bindings: []types.Binding{
			{Name: "word", Value: types.String("expanded")},
		},
		Output: types.OutputConfig{Viewer: "multiline"},
	}

	result, err := Run(action)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Text != "expanded" {
		t.Errorf("Expected 'expanded', got %q", result.Text)
	}
}

func TestChoiceSource(t *testing.T) {
	skipWithoutShell(t)

	choices, err := ChoiceSource(`printf 'one\ntwo\nthree\n'`)
	if err != nil {
		t.Fatalf("ChoiceSource failed: %v", err)
	}

	expected := []string{"one", "two", "three"}
	if !reflect.DeepEqual(choices, expected) {
		t.Errorf("Expected %v, got %v", expected, choices)
	}
}

func TestChoiceSource_EmptyOutput(t *testing.T) {
	skipWithoutShell(t)

	choices, err := ChoiceSource("true")
	if err != nil {
		t.Fatalf("ChoiceSource failed: %v", err)
	}
	if len(choices) != 0 {
		t.Errorf("Expected no choices, got %v", choices)
	}
}

func TestChoiceSource_Failure(t *testing.T) {
	skipWithoutShell(t)

	if _, err := ChoiceSource("exit 1"); err == nil {
		t.Error("Expected error for failing command")
	}
}
