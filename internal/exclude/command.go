package exclude

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandMarker delegates exclusion marking to an external backup tool
// (for example `tmutil addexclusion` / `tmutil isexcluded` on macOS). The
// matched path is appended as the final argument of each command.
//
// The query command's exit status carries the answer: 0 means excluded, 1
// means not excluded, anything else is a tool-level error.
type CommandMarker struct {
	query []string
	mark  []string
}

// NewCommandMarker builds a CommandMarker from query and mark argv
// templates. Both must name at least a binary.
func NewCommandMarker(query, mark []string) (*CommandMarker, error) {
	if len(query) == 0 {
		return nil, errors.New("query command is empty")
	}
	if len(mark) == 0 {
		return nil, errors.New("mark command is empty")
	}
	return &CommandMarker{query: query, mark: mark}, nil
}

// IsExcluded runs the query command against path.
func (m *CommandMarker) IsExcluded(ctx context.Context, path string) (bool, error) {
	_, err := m.run(ctx, m.query, path)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		return false, nil
	default:
		return false, fmt.Errorf("query %s: %w", m.query[0], err)
	}
}

// Exclude runs the mark command against path.
func (m *CommandMarker) Exclude(ctx context.Context, path string) error {
	stderr, err := m.run(ctx, m.mark, path)
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("%s: %w: %s", m.mark[0], err, stderr)
		}
		return fmt.Errorf("%s: %w", m.mark[0], err)
	}
	return nil
}

func (m *CommandMarker) run(ctx context.Context, argv []string, path string) (string, error) {
	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", argv[0], err)
	}

	args := append(append([]string(nil), argv[1:]...), path)
	cmd := exec.CommandContext(ctx, binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	return strings.TrimSpace(stderr.String()), runErr
}
