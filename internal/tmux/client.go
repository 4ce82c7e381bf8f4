// Package tmux drives the tmux server for a single sisi workspace session.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/logger"
)

const (
	// DefaultSessionName is used when no session is configured.
	DefaultSessionName = "sisi-workspace"

	// DefaultTimeout bounds every non-interactive tmux call.
	DefaultTimeout = 10 * time.Second

	// RootEnvVar is the session environment variable holding the workspace root.
	RootEnvVar = "SISI_ROOT"
)

// Client runs tmux commands against one session.
type Client struct {
	session string
	exec    executor.CommandExecutor
	timeout time.Duration
	out     io.Writer
	getenv  func(string) string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.out = w
	}
}

// WithGetenv replaces environment lookups, used to detect a surrounding tmux client.
func WithGetenv(fn func(string) string) Option {
	return func(c *Client) {
		c.getenv = fn
	}
}

// New creates a Client for session.
func New(session string, exec executor.CommandExecutor, options ...Option) *Client {
	if session == "" {
		session = DefaultSessionName
	}
	c := &Client{
		session: session,
		exec:    exec,
		timeout: DefaultTimeout,
		out:     io.Discard,
		getenv:  os.Getenv,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Session returns the session name.
func (c *Client) Session() string {
	return c.session
}

func (c *Client) target(window string) string {
	return c.session + ":" + window
}

// run executes tmux with args under the client timeout and returns trimmed stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.WithComponent("tmux").Debug("exec", "args", strings.Join(args, " "))

	stdout, stderr, err := c.exec.Run(ctx, "", "tmux", args...)
	if err != nil {
		return "", c.wrapError(ctx, err, string(stderr), args)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// wrapError maps a failed tmux invocation onto a typed error.
func (c *Client) wrapError(ctx context.Context, err error, stderr string, args []string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.WrapValidation(apperr.CodeTmuxTimeout, err,
			"tmux command timed out: tmux %s", strings.Join(args, " "))
	}

	if code := executor.ExitCode(err); code >= 0 {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = fmt.Sprintf("tmux command failed with code %d", code)
		}
		return apperr.WrapValidation(apperr.CodeTmuxError, err, "tmux error: %s", msg)
	}

	return apperr.WrapValidation(apperr.CodeTmuxExecError, err, "Failed to execute tmux: %v", err)
}

func (c *Client) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}
