package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	out, err := e.ExecuteRaw(ctx, name, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ExecuteRaw runs an external command and returns raw stdout bytes
func (e *implExecutor) ExecuteRaw(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return nil, fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return nil, fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.Bytes(), nil
}
