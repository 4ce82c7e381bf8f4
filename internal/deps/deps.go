// Package deps checks that the external tools sisi drives are installed.
package deps

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/tmux"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// DefaultClaudeCommands are tried in order until one answers --version.
var DefaultClaudeCommands = []string{"claude", "claude-code"}

// MinTmuxVersion is the oldest supported tmux.
var MinTmuxVersion = semver.MustParse("2.0.0")

const checkTimeout = 10 * time.Second

const tmuxInstallHint = "tmux is required but not found. Please install tmux:\n" +
	"  macOS: brew install tmux\n" +
	"  Ubuntu: sudo apt-get install tmux\n" +
	"  CentOS: sudo yum install tmux"

const claudeInstallHint = "Claude CLI is required but not found. Please install from:\n" +
	"  https://claude.ai/code\n" +
	"Then authenticate with: claude auth"

// Prerequisite represents a required CLI tool
type Prerequisite struct {
	Name        string   // Display name (e.g., "tmux", "claude")
	Commands    []string // Candidate executables, first working one wins
	Required    bool     // Whether sisi refuses to start without it
	Description string   // Human-readable description
	InstallURL  string   // URL for installation instructions
}

// CheckResult contains the result of checking a prerequisite
type CheckResult struct {
	Prerequisite Prerequisite
	Found        bool
	Command      string // Executable that answered
	Version      string // Version string if available
	Error        error
}

// Checker runs dependency checks through an executor.
type Checker struct {
	exec           executor.CommandExecutor
	claudeCommands []string
}

// NewChecker creates a Checker. An empty claudeCommands uses the defaults.
func NewChecker(exec executor.CommandExecutor, claudeCommands []string) *Checker {
	if len(claudeCommands) == 0 {
		claudeCommands = DefaultClaudeCommands
	}
	return &Checker{exec: exec, claudeCommands: claudeCommands}
}

// Prerequisites returns the tools sisi depends on
func (c *Checker) Prerequisites() []Prerequisite {
	return []Prerequisite{
		{
			Name:        "tmux",
			Commands:    []string{"tmux"},
			Required:    true,
			Description: "Terminal multiplexer (2.0+)",
			InstallURL:  "https://github.com/tmux/tmux/wiki/Installing",
		},
		{
			Name:        "claude",
			Commands:    c.claudeCommands,
			Required:    true,
			Description: "Claude Code CLI",
			InstallURL:  "https://claude.ai/code",
		},
		{
			Name:        "git",
			Commands:    []string{"git"},
			Required:    false,
			Description: "Git (optional, for quick actions status)",
			InstallURL:  "https://git-scm.com/downloads",
		},
	}
}

func (c *Checker) version(ctx context.Context, name, flag string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	stdout, _, err := c.exec.Run(ctx, "", name, flag)
	if err != nil {
		return "", err
	}
	return firstLine(string(stdout)), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	line = strings.TrimSpace(line)
	if len(line) > 100 {
		line = line[:100] + "..."
	}
	return line
}

// CheckTmux verifies tmux is installed and recent enough.
func (c *Checker) CheckTmux(ctx context.Context) CheckResult {
	result := CheckResult{Prerequisite: c.Prerequisites()[0]}

	out, err := c.version(ctx, "tmux", "-V")
	if err != nil {
		result.Error = apperr.NewDependencyError("tmux", tmuxInstallHint)
		return result
	}
	result.Found = true
	result.Command = "tmux"
	result.Version = strings.TrimSpace(strings.TrimPrefix(out, "tmux"))

	// Development builds like "tmux master" carry no number and are accepted.
	v, err := tmux.ParseVersion(out)
	if err != nil {
		logger.WithComponent("deps").Debug("unparsed tmux version", "output", out)
		return result
	}
	if v.LessThan(MinTmuxVersion) {
		result.Error = apperr.NewDependencyError("tmux",
			fmt.Sprintf("tmux version %d.%d is too old. Version 2.0+ required.", v.Major(), v.Minor()))
	}
	return result
}

// CheckClaude finds the first configured claude command that answers --version.
func (c *Checker) CheckClaude(ctx context.Context) CheckResult {
	result := CheckResult{Prerequisite: c.Prerequisites()[1]}

	for _, cmd := range c.claudeCommands {
		out, err := c.version(ctx, cmd, "--version")
		if err != nil {
			continue
		}
		result.Found = true
		result.Command = cmd
		result.Version = out
		if result.Version == "" {
			result.Version = cmd
		}
		return result
	}

	result.Error = apperr.NewDependencyError("claude", claudeInstallHint)
	return result
}

// CheckGit reports whether git is available.
func (c *Checker) CheckGit(ctx context.Context) CheckResult {
	result := CheckResult{Prerequisite: c.Prerequisites()[2]}

	out, err := c.version(ctx, "git", "--version")
	if err != nil {
		result.Error = fmt.Errorf("git not found in PATH")
		return result
	}
	result.Found = true
	result.Command = "git"
	result.Version = strings.TrimSpace(strings.TrimPrefix(out, "git version"))
	return result
}

// CheckAll runs every check and returns results in prerequisite order
func (c *Checker) CheckAll(ctx context.Context) []CheckResult {
	return []CheckResult{
		c.CheckTmux(ctx),
		c.CheckClaude(ctx),
		c.CheckGit(ctx),
	}
}

// Validate checks the required tools, printing a line per tool found.
// The first failure is returned as a DependencyError.
func (c *Checker) Validate(ctx context.Context, out io.Writer) error {
	_, _ = fmt.Fprintln(out, tui.TitleStyle.Render("🔍 Checking dependencies..."))

	for _, check := range []func(context.Context) CheckResult{c.CheckTmux, c.CheckClaude} {
		result := check(ctx)
		if result.Error != nil {
			return result.Error
		}
		_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render(result.Summary()))
	}
	return nil
}

// Summary renders a found tool the way startup prints it.
func (r CheckResult) Summary() string {
	if r.Prerequisite.Name == "tmux" {
		return fmt.Sprintf("✓ tmux %s", r.Version)
	}
	return fmt.Sprintf("✓ %s (%s)", r.Command, r.Version)
}

// FormatCheckResults formats check results for display
func FormatCheckResults(results []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("CLI Prerequisites:\n")
	for _, r := range results {
		status := "✓"
		if !r.Found || r.Error != nil {
			if r.Prerequisite.Required {
				status = "✗"
			} else {
				status = "○"
			}
		}

		sb.WriteString(fmt.Sprintf("  %s %s", status, r.Prerequisite.Name))
		switch {
		case r.Found && r.Version != "":
			sb.WriteString(fmt.Sprintf(" (%s)", r.Version))
		case !r.Found && r.Prerequisite.Required:
			sb.WriteString(" [REQUIRED]")
		case !r.Found:
			sb.WriteString(" [optional]")
		}
		if r.Found && r.Error != nil {
			sb.WriteString(" " + firstLine(r.Error.Error()))
		}
		sb.WriteString("\n")
		if !r.Found && r.Prerequisite.InstallURL != "" {
			sb.WriteString(fmt.Sprintf("      Install: %s\n", r.Prerequisite.InstallURL))
		}
	}

	return sb.String()
}

// Healthy reports whether every required tool passed.
func Healthy(results []CheckResult) bool {
	for _, r := range results {
		if r.Prerequisite.Required && (!r.Found || r.Error != nil) {
			return false
		}
	}
	return true
}
