// Package projectcmd runs the dev, test and build command that fits a project.
package projectcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tui"
	"github.com/sisi-cmux/sisi/internal/workspace"
)

// SupportedTypes is printed when a directory has no recognisable project.
const SupportedTypes = "Supported: Node.js, Python, Rust, Go, Web"

// Runner resolves and executes project commands.
type Runner struct {
	fs       filesystem.FileSystem
	exec     executor.CommandExecutor
	out      io.Writer
	mappings map[models.ProjectType]CommandSet
}

// NewRunner creates a Runner that prints to out.
func NewRunner(fs filesystem.FileSystem, exec executor.CommandExecutor, out io.Writer) *Runner {
	return &Runner{fs: fs, exec: exec, out: out, mappings: Mappings}
}

// Resolve picks the command for action in dir. The command is nil when
// the type is unknown or has nothing mapped for action.
func (r *Runner) Resolve(action models.Action, dir string) (models.ProjectType, *Command) {
	projectType := workspace.DetectProjectType(r.fs, dir)
	set, ok := r.mappings[projectType]
	if !ok {
		return projectType, nil
	}
	return projectType, FindBest(r.fs, set[action], dir)
}

// DryRun reports the detected type without running anything.
func (r *Runner) DryRun(dir string) {
	r.println(fmt.Sprintf("%s project detected", workspace.DetectProjectType(r.fs, dir)))
}

// Execute runs the best command for action in dir with the terminal attached.
// Unknown projects and missing mappings only print a warning.
func (r *Runner) Execute(ctx context.Context, action models.Action, dir string) error {
	if !action.IsValid() {
		return fmt.Errorf("invalid action: %s (must be dev, test, or build)", action)
	}

	projectType, cmd := r.Resolve(action, dir)

	if projectType == models.ProjectTypeUnknown {
		r.println(tui.WarnStyle.Render(fmt.Sprintf("⚠️  Unknown project type in %s", dir)))
		r.println(tui.DimStyle.Render(SupportedTypes))
		return nil
	}
	if cmd == nil {
		r.println(tui.WarnStyle.Render(fmt.Sprintf("⚠️  No %s commands defined for %s projects", action, projectType)))
		return nil
	}

	r.println(tui.TitleStyle.Render(fmt.Sprintf("🚀 Running: %s", cmd.Name)))
	r.println(tui.DimStyle.Render(fmt.Sprintf("   Command: %s", cmd.Command)))
	r.println(tui.DimStyle.Render(fmt.Sprintf("   Description: %s", cmd.Description)))
	r.println("")

	logger.WithComponent("projectcmd").Info("running project command",
		"action", action, "type", projectType, "command", cmd.Command, "dir", dir)

	if err := r.exec.Interactive(ctx, dir, "sh", "-c", cmd.Command); err != nil {
		return fmt.Errorf("command failed: %s: %w", cmd.Command, err)
	}
	return nil
}

func (r *Runner) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
