package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Zigazou/cliquetis/internal/types"
)

func writeTool(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write tool description: %v", err)
	}
	return path
}

const sampleJSON = `# This is a comment line
{
  "title": "Disk usage",
  "description": "Show disk usage of a directory",
  "actions": [
    {
      "name": "Analyze",
      "command": ["du", "-d", "{depth}", "{human}", "{dir}"],
      "options": {
        "dir": {"type": "file", "name": "Directory", "default": "/tmp"},
        "depth": {"type": "list", "name": "Depth", "values": ["1", "2", "3"], "default": "1"},
        "human": {"type": "boolean", "name": "Human readable", "true": "-h", "false": null, "default": true},
        "note": {"type": "text", "name": "Note"}
      },
      "output": {"viewer": "table", "separator": "\t", "group-by": 1}
    }
  ]
}`

func TestLoad_SampleTool(t *testing.T) {
	tool, err := Load(writeTool(t, "du.json", sampleJSON))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tool.Title != "Disk usage" {
		t.Errorf("Expected title 'Disk usage', got %q", tool.Title)
	}
	if len(tool.Actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(tool.Actions))
	}

	action := tool.First()
	if action.Name != "Analyze" {
		t.Errorf("Expected action name 'Analyze', got %q", action.Name)
	}
	if len(action.Command) != 5 {
		t.Errorf("Expected 5 command templates, got %d", len(action.Command))
	}

	// Options keep declaration order.
	keys := make([]string, 0, len(action.Options))
	for _, option := range action.Options {
		keys = append(keys, option.Key)
	}
	if !reflect.DeepEqual(keys, []string{"dir", "depth", "human", "note"}) {
		t.Errorf("Expected declaration order, got %v", keys)
	}

	human := action.Options[2]
	if human.Kind != types.KindBoolean {
		t.Errorf("Expected boolean kind, got %v", human.Kind)
	}
	if human.OnValue.String() != "-h" || human.OnValue.IsAbsent() {
		t.Errorf("Expected on value -h, got %+v", human.OnValue)
	}
	if !human.OffValue.IsAbsent() {
		t.Error("Expected null false value to be absent")
	}
	if !human.DefaultSet || !human.DefaultOn {
		t.Error("Expected boolean default to be on")
	}

	if action.Output.Viewer != "table" {
		t.Errorf("Expected table viewer, got %q", action.Output.Viewer)
	}
	if action.Output.GroupBy == nil || *action.Output.GroupBy != 1 {
		t.Errorf("Expected group-by 1, got %v", action.Output.GroupBy)
	}
}

func TestLoad_HashCommentsStripped(t *testing.T) {
	content := "# leading comment\n{\"title\": \"t\", \"description\": \"d\",\n" +
		"# embedded comment\n" +
		"\"actions\": [{\"name\": \"n\", \"command\": [\"true\"], \"options\": {}, \"output\": {}}]}"

	tool, err := Load(writeTool(t, "tool.json", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tool.Title != "t" {
		t.Errorf("Expected title 't', got %q", tool.Title)
	}
}

func TestLoad_JsoncCommentsTolerated(t *testing.T) {
	content := `{
  // slash comment
  "title": "t", "description": "d",
  "actions": [{"name": "n", "command": ["true"], "options": {}, "output": {}}],
}`

	if _, err := Load(writeTool(t, "tool.json", content)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	content := `title: t
description: d
actions:
  - name: n
    command: [ls, "{dir}"]
    options:
      dir:
        type: text
        name: Directory
        default: /tmp
    output:
      viewer: json
      collapsed: true
      key-values: [id, n]
`

	tool, err := Load(writeTool(t, "tool.yaml", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	action := tool.First()
	if action.Options[0].Default != "/tmp" {
		t.Errorf("Expected default /tmp, got %q", action.Options[0].Default)
	}
	if !action.Output.Collapsed {
		t.Error("Expected collapsed output")
	}
	if !reflect.DeepEqual(action.Output.KeyValues, []string{"id", "n"}) {
		t.Errorf("Expected key-values [id n], got %v", action.Output.KeyValues)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{not json`},
		{"missing title", `{"description": "d", "actions": [{"name": "n", "command": ["x"], "options": {}, "output": {}}]}`},
		{"empty actions", `{"title": "t", "description": "d", "actions": []}`},
		{"unknown option type", `{"title": "t", "description": "d", "actions": [{"name": "n", "command": ["x"], "options": {"o": {"type": "slider", "name": "O"}}, "output": {}}]}`},
		{"boolean without true value", `{"title": "t", "description": "d", "actions": [{"name": "n", "command": ["x"], "options": {"o": {"type": "boolean", "name": "O", "false": "off"}}, "output": {}}]}`},
		{"group-by not a number", `{"title": "t", "description": "d", "actions": [{"name": "n", "command": ["x"], "options": {}, "output": {"group-by": "first"}}]}`},
		{"invalid filter", `{"title": "t", "description": "d", "actions": [{"name": "n", "command": ["x"], "options": {}, "output": {"viewer": "json", "filter": "items["}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTool(t, "tool.json", tt.content))

			var configErr *types.ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("Expected ConfigError, got %v", err)
			}
		})
	}
}
