package tmux

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// listWindowsFormat separates fields with tabs so window names may contain colons.
const listWindowsFormat = "#{window_index}\t#{window_active}\t#{window_name}"

// WindowDiff reports the project windows added and removed by an update.
type WindowDiff struct {
	Added   []string
	Removed []string
}

// Empty reports whether the update changed nothing.
func (d WindowDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// SelectWindow focuses target, a window index or name.
func (c *Client) SelectWindow(ctx context.Context, target string) error {
	_, err := c.run(ctx, "select-window", "-t", c.target(target))
	return err
}

// ListWindows returns the session windows ordered by index. Errors yield an empty list.
func (c *Client) ListWindows(ctx context.Context) []models.Window {
	out, err := c.run(ctx, "list-windows", "-t", c.session, "-F", listWindowsFormat)
	if err != nil {
		return nil
	}
	return parseWindows(out)
}

func parseWindows(out string) []models.Window {
	var windows []models.Window
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			continue
		}
		windows = append(windows, models.Window{
			Index:  index,
			Active: strings.TrimSpace(fields[1]) == "1",
			Name:   fields[2],
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Index < windows[j].Index
	})
	return windows
}

// AddWindow opens a window for project.
func (c *Client) AddWindow(ctx context.Context, project *models.Project) error {
	if _, err := c.run(ctx, c.newWindowArgs(project)...); err != nil {
		return apperr.WrapValidation(apperr.CodeAddWindowError, err,
			"Failed to add window for %s: %v", project.Name, err)
	}
	c.printf(tui.SuccessStyle.Render(fmt.Sprintf("  ✓ Added window for %s", project.Name)))
	return nil
}

// RemoveWindow kills the first window whose name contains projectName.
// A missing window is not an error.
func (c *Client) RemoveWindow(ctx context.Context, projectName string) error {
	for _, w := range c.ListWindows(ctx) {
		if !strings.Contains(w.Name, projectName) {
			continue
		}
		if _, err := c.run(ctx, "kill-window", "-t", c.target(strconv.Itoa(w.Index))); err != nil {
			return apperr.WrapValidation(apperr.CodeRemoveWindow, err,
				"Failed to remove window for %s: %v", projectName, err)
		}
		c.printf(tui.WarnStyle.Render(fmt.Sprintf("  ✓ Removed window for %s", projectName)))
		return nil
	}
	return nil
}

// UpdateProjectWindows reconciles the session windows with projects.
// Failures on individual windows are reported and skipped.
func (c *Client) UpdateProjectWindows(ctx context.Context, projects []*models.Project) WindowDiff {
	current := make(map[string]struct{})
	var currentNames []string
	for _, w := range c.ListWindows(ctx) {
		name := w.ProjectName()
		if _, seen := current[name]; !seen {
			currentNames = append(currentNames, name)
		}
		current[name] = struct{}{}
	}

	wanted := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		wanted[p.Name] = struct{}{}
	}

	var diff WindowDiff

	for _, p := range projects {
		if _, ok := current[p.Name]; ok {
			continue
		}
		diff.Added = append(diff.Added, p.Name)
		if err := c.AddWindow(ctx, p); err != nil {
			c.printf(tui.WarnStyle.Render(fmt.Sprintf("  ⚠️  %v", err)))
		}
	}

	for _, name := range currentNames {
		if _, ok := wanted[name]; ok {
			continue
		}
		diff.Removed = append(diff.Removed, name)
		if err := c.RemoveWindow(ctx, name); err != nil {
			c.printf(tui.WarnStyle.Render(fmt.Sprintf("  ⚠️  %v", err)))
		}
	}

	c.RefreshStatusBar(ctx)

	if diff.Empty() {
		c.printf(tui.DimStyle.Render("  ✓ No project changes detected"))
	} else {
		c.printf(tui.SuccessStyle.Render(fmt.Sprintf("  ✓ Updated workspace: +%d -%d projects", len(diff.Added), len(diff.Removed))))
	}

	return diff
}

// RefreshStatusBar redraws the status line. Failures only print a warning.
func (c *Client) RefreshStatusBar(ctx context.Context) {
	if _, err := c.run(ctx, "refresh-client", "-S"); err != nil {
		c.printf(tui.DimStyle.Render(fmt.Sprintf("  Warning: Failed to refresh status bar: %v", err)))
	}
}

// MenuItem is one display-menu entry.
type MenuItem struct {
	Label   string
	Key     string
	Command string
}

// MenuArgs builds the display-menu argument list.
func MenuArgs(title string, items []MenuItem) []string {
	args := []string{"display-menu", "-T", title}
	for _, item := range items {
		args = append(args, item.Label, item.Key, item.Command)
	}
	return args
}

// DisplayMenu shows a native tmux menu.
func (c *Client) DisplayMenu(ctx context.Context, title string, items []MenuItem) error {
	_, err := c.run(ctx, MenuArgs(title, items)...)
	return err
}
