package tmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// SessionExists reports whether the session is running. Any failure counts as absent.
func (c *Client) SessionExists(ctx context.Context) bool {
	_, err := c.run(ctx, "has-session", "-t", c.session)
	return err == nil
}

// CreateSession starts a detached session with one window per project and
// records rootDir in the session environment. A partially created session is
// killed before the error is returned.
func (c *Client) CreateSession(ctx context.Context, projects []*models.Project, configPath, rootDir string) error {
	if c.SessionExists(ctx) {
		return apperr.NewValidationError(apperr.CodeSessionExists,
			"Workspace session already exists. Use \"sisi stop\" first.")
	}
	if len(projects) == 0 {
		return apperr.NewValidationError(apperr.CodeNoProjects, "No projects found to create workspace.")
	}

	if err := c.createWindows(ctx, projects, configPath, rootDir); err != nil {
		c.printf(tui.WarnStyle.Render("  Cleaning up partially created session..."))
		if c.SessionExists(ctx) {
			_, _ = c.run(ctx, "kill-session", "-t", c.session)
		}
		return err
	}
	return nil
}

func (c *Client) createWindows(ctx context.Context, projects []*models.Project, configPath, rootDir string) error {
	first := projects[0]
	c.printf(tui.DimStyle.Render(fmt.Sprintf("  Creating session with %s...", first.Name)))

	args := []string{}
	if configPath != "" {
		args = append(args, "-f", configPath)
	}
	args = append(args, "new-session", "-d", "-s", c.session, "-n", first.WindowName(), "-c", first.Path)
	if _, err := c.run(ctx, args...); err != nil {
		return err
	}
	created := 1

	// -f is ignored when a server is already running, so load the config explicitly.
	if configPath != "" {
		if err := c.SourceFile(ctx, configPath); err != nil {
			c.printf(tui.WarnStyle.Render(fmt.Sprintf("  ⚠️  Failed to load tmux config %s: %v", configPath, err)))
		}
	}

	for _, project := range projects[1:] {
		c.printf(tui.DimStyle.Render(fmt.Sprintf("  Adding window for %s...", project.Name)))
		if _, err := c.run(ctx, c.newWindowArgs(project)...); err != nil {
			c.printf(tui.WarnStyle.Render(fmt.Sprintf("  ⚠️  Failed to create window for %s: %v", project.Name, err)))
			continue
		}
		created++
	}

	if rootDir != "" {
		if _, err := c.run(ctx, "set-environment", "-t", c.session, RootEnvVar, rootDir); err != nil {
			c.printf(tui.DimStyle.Render(fmt.Sprintf("  Warning: Failed to record workspace root: %v", err)))
		}
	}

	if created == 0 {
		return apperr.NewValidationError(apperr.CodeNoWindowsCreated, "Failed to create any project windows")
	}

	c.printf(tui.SuccessStyle.Render(fmt.Sprintf("  ✓ Created %d project windows", created)))
	return nil
}

// SourceFile loads a tmux configuration file into the running server.
func (c *Client) SourceFile(ctx context.Context, path string) error {
	_, err := c.run(ctx, "source-file", path)
	return err
}

func (c *Client) newWindowArgs(project *models.Project) []string {
	return []string{"new-window", "-t", c.session, "-n", project.WindowName(), "-c", project.Path}
}

// InsideTmux reports whether sisi is running inside a tmux client.
func (c *Client) InsideTmux() bool {
	return c.getenv("TMUX") != ""
}

// Attach connects the terminal to the session, or switches the current
// client when already inside tmux.
func (c *Client) Attach(ctx context.Context) error {
	if !c.SessionExists(ctx) {
		return apperr.NewValidationError(apperr.CodeNoSession,
			"No workspace session found. Use \"sisi start <directory>\" first.")
	}

	args := []string{"attach-session", "-t", c.session}
	if c.InsideTmux() {
		args = []string{"switch-client", "-t", c.session}
	}

	err := c.exec.Interactive(ctx, "", "tmux", args...)
	if err == nil {
		return nil
	}
	if code := executor.ExitCode(err); code >= 0 {
		return apperr.WrapValidation(apperr.CodeAttachError, err, "Failed to attach to session: exit code %d", code)
	}
	return apperr.WrapValidation(apperr.CodeAttachError, err, "Failed to attach to session: %v", err)
}

// Kill terminates the session if it is running.
func (c *Client) Kill(ctx context.Context) error {
	if !c.SessionExists(ctx) {
		return nil
	}
	_, err := c.run(ctx, "kill-session", "-t", c.session)
	return err
}

// RootDir returns the workspace root recorded when the session was created.
func (c *Client) RootDir(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "show-environment", "-t", c.session, RootEnvVar)
	if err != nil {
		return "", apperr.WrapValidation(apperr.CodeNoRootDir, err,
			"Workspace root is not recorded for this session. Pass a directory: sisi refresh <directory>")
	}

	// show-environment prints NAME=value, or -NAME when the variable was removed.
	name, value, ok := strings.Cut(out, "=")
	if !ok || name != RootEnvVar || value == "" {
		return "", apperr.NewValidationError(apperr.CodeNoRootDir,
			"Workspace root is not recorded for this session. Pass a directory: sisi refresh <directory>")
	}
	return value, nil
}
