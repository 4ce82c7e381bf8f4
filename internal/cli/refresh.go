package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/tui"
	"github.com/sisi-cmux/sisi/internal/workspace"
	"github.com/spf13/cobra"
)

// RefreshCommand handles the refresh command
type RefreshCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	env  Env
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	cmd := &RefreshCommand{
		fs:   fs,
		exec: exec,
		env:  env,
	}

	return &cobra.Command{
		Use:   "refresh [directory]",
		Short: "Rescan the workspace and add or remove project windows",
		Long: `Rediscovers projects and reconciles the running session with them:
new projects get a window, windows of vanished projects are closed.

The directory defaults to the one the workspace was started from.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the refresh command
func (c *RefreshCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}
	client := s.tmuxClient(c.exec, c.env, out)

	if !client.SessionExists(ctx) {
		return apperr.NewValidationError(apperr.CodeNoSession,
			"No workspace session found. Use \"sisi start <directory>\" first.")
	}

	// The U binding passes an empty prompt through as "".
	var dir string
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir, err = workspace.ResolveDirectory(c.fs, args[0])
	} else {
		dir, err = client.RootDir(ctx)
	}
	if err != nil {
		return err
	}
	if err := workspace.ValidateDirectory(c.fs, dir); err != nil {
		return err
	}

	fmt.Fprintln(out, tui.TitleStyle.Render("🔄 Refreshing workspace projects..."))

	scanCtx, cancel := context.WithTimeout(ctx, s.ScanTimeout)
	defer cancel()

	projects, err := s.scanner(c.fs, out).Discover(scanCtx, dir)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, tui.WarnStyle.Render("⚠️  No projects found in directory"))
		return nil
	}

	diff := client.UpdateProjectWindows(ctx, projects)
	logger.WithComponent("cli").Info("workspace refreshed",
		"session", client.Session(), "root", dir, "projects", workspace.ProjectNames(projects),
		"added", diff.Added, "removed", diff.Removed)

	fmt.Fprintln(out, tui.SuccessStyle.Render("✅ Workspace refresh complete!"))
	return nil
}
