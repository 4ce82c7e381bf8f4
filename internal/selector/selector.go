// Package selector lets the user jump to a project window.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tmux"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// Selector shows the project windows of a session.
type Selector struct {
	tmux    *tmux.Client
	out     io.Writer
	theme   *huh.Theme
	runForm func(ctx context.Context, form *huh.Form) error
}

// New creates a Selector printing to out.
func New(client *tmux.Client, out io.Writer) *Selector {
	return &Selector{
		tmux:  client,
		out:   out,
		theme: tui.NewHuhTheme(),
		runForm: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
}

// MenuTitle is the display-menu title for n windows.
func MenuTitle(n int) string {
	return fmt.Sprintf("Select Project (%d total) - ↑↓ + Enter, Esc to cancel", n)
}

// ItemLabel renders a window as "[idx] name (Type)".
func ItemLabel(w models.Window) string {
	label := fmt.Sprintf("[%d] %s", w.Index, w.Name)
	if typeLabel := models.TypeLabelFromWindow(w.Name); typeLabel != "" {
		label += fmt.Sprintf(" (%s)", typeLabel)
	}
	return label
}

// MenuItems builds one menu entry per window.
func MenuItems(session string, windows []models.Window) []tmux.MenuItem {
	items := make([]tmux.MenuItem, 0, len(windows))
	for _, w := range windows {
		items = append(items, tmux.MenuItem{
			Label:   ItemLabel(w),
			Key:     "",
			Command: fmt.Sprintf("select-window -t %s:%d", session, w.Index),
		})
	}
	return items
}

// Options builds one form option per window and returns the index to
// preselect: the active window, or the first when none is active.
func Options(windows []models.Window) ([]huh.Option[int], int) {
	opts := make([]huh.Option[int], 0, len(windows))
	selected := -1
	for _, w := range windows {
		opts = append(opts, huh.NewOption(ItemLabel(w), w.Index))
		if w.Active && selected < 0 {
			selected = w.Index
		}
	}
	if selected < 0 && len(windows) > 0 {
		selected = windows[0].Index
	}
	return opts, selected
}

func (s *Selector) windows(ctx context.Context) []models.Window {
	windows := s.tmux.ListWindows(ctx)
	if len(windows) == 0 {
		_, _ = fmt.Fprintln(s.out, tui.WarnStyle.Render("No projects found in workspace"))
	}
	return windows
}

// Show opens a tmux display-menu listing the project windows.
func (s *Selector) Show(ctx context.Context) error {
	windows := s.windows(ctx)
	if len(windows) == 0 {
		return nil
	}

	if err := s.tmux.DisplayMenu(ctx, MenuTitle(len(windows)), MenuItems(s.tmux.Session(), windows)); err != nil {
		return fmt.Errorf("failed to show project selector: %w", err)
	}
	return nil
}

// ShowTUI asks with a terminal form instead of a tmux menu. Aborting selects nothing.
func (s *Selector) ShowTUI(ctx context.Context) error {
	windows := s.windows(ctx)
	if len(windows) == 0 {
		return nil
	}

	opts, selected := Options(windows)

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Submit.SetKeys("enter")
	keyMap.Select.Submit.SetHelp("enter", "switch")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Options(opts...).
				Value(&selected),
		).
			Title(MenuTitle(len(windows))),
	).
		WithTheme(s.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := s.runForm(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	return s.tmux.SelectWindow(ctx, strconv.Itoa(selected))
}
