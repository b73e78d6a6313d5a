package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs a command and returns its stdout as a string.
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteRaw runs a command and returns its stdout untouched. Used
	// for commands that emit binary data, e.g. ffmpeg piping a JPEG
	// frame to stdout.
	ExecuteRaw(ctx context.Context, name string, args ...string) ([]byte, error)
}
