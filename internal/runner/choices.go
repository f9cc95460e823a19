package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ChoiceSourceTimeout bounds the shell command a list field may run to
// produce its choices.
const ChoiceSourceTimeout = 5 * time.Second

// ChoiceSource runs a shell command and returns its stdout lines as the
// choices of a list field.
func ChoiceSource(command string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ChoiceSourceTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("choice source $(%s): %s", command, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("choice source $(%s): %w", command, err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	return lines, nil
}
