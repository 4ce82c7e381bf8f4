package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/deps"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tmux"
	"github.com/sisi-cmux/sisi/internal/tmuxconf"
	"github.com/sisi-cmux/sisi/internal/tui"
	"github.com/sisi-cmux/sisi/internal/workspace"
	"github.com/spf13/cobra"
)

// keyBindings are printed once a workspace has been created.
var keyBindings = []struct{ Keys, Description string }{
	{"Ctrl+b P", "Project selector"},
	{"Ctrl+b C", "Launch Claude"},
	{"Ctrl+b Q", "Quick actions"},
	{"Ctrl+b D", "Run dev server"},
	{"Ctrl+b S", "Stop workspace"},
}

// StartCommand handles the start command
type StartCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	env  Env
}

// NewStartCommand creates a new start command
func NewStartCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	cmd := &StartCommand{
		fs:   fs,
		exec: exec,
		env:  env,
	}

	return &cobra.Command{
		Use:   "start [directory]",
		Short: "Create a workspace from a directory, or attach if it exists",
		Long: `Scans the immediate subdirectories of directory (default: the current
directory) for projects and opens one tmux window per project.

If the workspace session is already running, start attaches to it instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the start command
func (c *StartCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}

	if err := deps.NewChecker(c.exec, s.ClaudeCommands).Validate(ctx, out); err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	dir, err := workspace.ResolveDirectory(c.fs, arg)
	if err != nil {
		return apperr.WithContext("Directory validation failed", err)
	}
	if err := workspace.ValidateDirectory(c.fs, dir); err != nil {
		return err
	}

	client := s.tmuxClient(c.exec, c.env, out)

	if client.SessionExists(ctx) {
		fmt.Fprintln(out, tui.TitleStyle.Render("📎 Attaching to existing workspace..."))
		return client.Attach(ctx)
	}

	fmt.Fprintln(out, tui.TitleStyle.Render("🔍 Discovering projects..."))

	scanCtx, cancel := context.WithTimeout(ctx, s.ScanTimeout)
	defer cancel()

	projects, err := s.scanner(c.fs, out).Discover(scanCtx, dir)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, tui.WarnStyle.Render("❌ No projects found in "+dir))
		fmt.Fprintln(out, tui.DimStyle.Render("A project should contain one of: "+strings.Join(models.MarkerFiles(), ", ")))
		fmt.Fprintln(out, tui.DimStyle.Render("Tip: Make sure subdirectories contain actual project files"))
		return nil
	}

	printProjectSummary(out, projects)

	configPath, err := c.writeTmuxConfig(ctx, s, client)
	if err != nil {
		return err
	}

	if err := client.CreateSession(ctx, projects, configPath, dir); err != nil {
		return apperr.WithContext("Failed to create tmux session", err)
	}

	logger.WithComponent("cli").Info("workspace created",
		"session", client.Session(), "root", dir, "projects", workspace.ProjectNames(projects))

	fmt.Fprintln(out, tui.SuccessStyle.Render("✅ Workspace created!"))
	fmt.Fprintln(out, tui.HeaderStyle.Render("Key bindings:"))
	for _, kb := range keyBindings {
		fmt.Fprintln(out, tui.DimStyle.Render(fmt.Sprintf("  %-9s - %s", kb.Keys, kb.Description)))
	}
	fmt.Fprintln(out)

	return client.Attach(ctx)
}

// writeTmuxConfig renders the session config with the path of this binary,
// enabling popups when the installed tmux supports them.
func (c *StartCommand) writeTmuxConfig(ctx context.Context, s *settings, client *tmux.Client) (string, error) {
	sisiPath := "sisi"
	if c.env.Executable != nil {
		if exe, err := c.env.Executable(); err == nil {
			sisiPath = exe
		}
	}

	popup := false
	if v, _, err := client.Version(ctx); err == nil {
		popup = tmux.SupportsPopup(v)
	}

	path, err := tmuxconf.NewGenerator(c.fs, s.TemplatePath()).Write(tmuxconf.Params{
		SisiPath: sisiPath,
		Session:  client.Session(),
		Popup:    popup,
	})
	if err != nil {
		return "", fmt.Errorf("failed to write tmux config: %w", err)
	}
	return path, nil
}

// printProjectSummary lists the discovered projects grouped by type.
func printProjectSummary(out io.Writer, projects []*models.Project) {
	fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("📦 Found %d projects:", len(projects))))

	order, groups := models.GroupByType(projects)
	for _, t := range order {
		fmt.Fprintln(out, tui.DimStyle.Render(fmt.Sprintf("  %s (%d):", t, len(groups[t]))))
		for _, p := range groups[t] {
			fmt.Fprintf(out, "    %s %s\n", p.Icon, p.Name)
		}
	}
}
