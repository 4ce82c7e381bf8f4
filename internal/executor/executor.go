// Package executor runs external commands behind an interface so tmux, git
// and project commands can be exercised with recorded responses in tests.
package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Run executes a command and returns stdout, stderr, and any error.
	Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error)

	// Interactive executes a command attached to the executor's terminal streams.
	Interactive(ctx context.Context, dir string, name string, args ...string) error
}

// RealExecutor executes commands using os/exec.
type RealExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRealExecutor returns a RealExecutor bound to the process's stdio.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes a command and returns stdout, stderr, and any error.
func (e *RealExecutor) Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	return stdoutBuf.Bytes(), stderrBuf.Bytes(), err
}

// Interactive executes a command with inherited stdio.
func (e *RealExecutor) Interactive(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// ExitCode extracts the process exit code from err, or -1 if the process never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// IsNotFound reports whether err means the executable could not be located.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
