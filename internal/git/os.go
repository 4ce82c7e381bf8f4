package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/sisi-cmux/sisi/internal/executor"
)

// OSGitClient implements GitClient by running git in a directory
type OSGitClient struct {
	ctx  context.Context
	exec executor.CommandExecutor
	dir  string
}

// NewOSGitClient creates a new OSGitClient for dir
func NewOSGitClient(exec executor.CommandExecutor, dir string) *OSGitClient {
	return &OSGitClient{
		ctx:  context.Background(),
		exec: exec,
		dir:  dir,
	}
}

// WithContext returns a new client with the given context
func (g *OSGitClient) WithContext(ctx context.Context) GitClient {
	return &OSGitClient{
		ctx:  ctx,
		exec: g.exec,
		dir:  g.dir,
	}
}

func (g *OSGitClient) run(args ...string) (string, error) {
	stdout, stderr, err := g.exec.Run(g.ctx, g.dir, "git", args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(stdout), nil
}

// IsGitRepo checks if the directory is inside a git work tree
func (g *OSGitClient) IsGitRepo() (bool, error) {
	out, err := g.run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		if executor.IsNotFound(err) {
			return false, err
		}
		return false, nil
	}
	return strings.TrimSpace(out) == "true", nil
}

// GetCurrentBranch returns the checked out branch, empty on a detached HEAD
func (g *OSGitClient) GetCurrentBranch() (string, error) {
	out, err := g.run("branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HasUncommittedChanges reports whether git status --porcelain prints anything
func (g *OSGitClient) HasUncommittedChanges() (bool, error) {
	out, err := g.run("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// RecentLog returns up to n one-line commit summaries, newest first
func (g *OSGitClient) RecentLog(n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	out, err := g.run("log", "--oneline", fmt.Sprintf("-%d", n))
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
