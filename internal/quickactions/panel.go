package quickactions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/tui"
)

var brandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)

// Panel renders status and runs actions for one project directory.
type Panel struct {
	dir           string
	exec          executor.CommandExecutor
	out           io.Writer
	editorCommand string

	Status  *Status
	Actions []Action
}

// NewPanel creates a Panel for dir from a gathered status.
func NewPanel(dir string, status *Status, exec executor.CommandExecutor, out io.Writer, editorCommand string) *Panel {
	return &Panel{
		dir:           dir,
		exec:          exec,
		out:           out,
		editorCommand: editorCommand,
		Status:        status,
		Actions:       Actions(status, editorCommand),
	}
}

// Header renders the panel title and path.
func (p *Panel) Header() string {
	return brandStyle.Render("  ▶ sisi Quick Actions") + "\n" + tui.DimStyle.Render("  "+p.dir) + "\n"
}

// RenderStatus renders the project status block.
func (p *Panel) RenderStatus() string {
	s := p.Status
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("🚀 Quick Actions Panel") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("📊 Project Status:") + "\n")
	b.WriteString(fmt.Sprintf("  %s Type: %s\n", s.Icon, tui.SelectedStyle.Render(s.Type.String())))

	if s.HasGit() {
		b.WriteString(fmt.Sprintf("  🌿 Branch: %s %s\n", tui.SuccessStyle.Render(s.Git.Branch), s.Git.Label()))
		if s.Git.LastCommit != "" {
			b.WriteString(fmt.Sprintf("  📝 Last commit: %s\n", tui.DimStyle.Render(s.Git.LastCommit)))
		}
	}
	if s.Dependencies != nil {
		b.WriteString(fmt.Sprintf("  📦 Dependencies: %s total\n", tui.KeyStyle.Render(fmt.Sprint(s.Dependencies.Total))))
	}
	if len(s.Processes) > 0 {
		b.WriteString(fmt.Sprintf("  🏃 Running: %s processes\n", tui.WarnStyle.Render(fmt.Sprint(len(s.Processes)))))
	}
	b.WriteString(fmt.Sprintf("  ⏰ Updated: %s\n", tui.DimStyle.Render(s.UpdatedAt.Format("15:04:05"))))

	return b.String()
}

// RenderActions renders the static action list with close hints.
func (p *Panel) RenderActions() string {
	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("⚡ Available Actions:") + "\n")

	for _, a := range p.Actions {
		key := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Bold(true).Render(strings.ToUpper(a.Key))
		b.WriteString(fmt.Sprintf("  %s - %s\n", key, a.Title))
		b.WriteString(fmt.Sprintf("      %s\n", tui.DimStyle.Render(a.Description)))
	}

	b.WriteString("\n" + tui.DimStyle.Render("  ESC - Close panel") + "\n")
	b.WriteString(tui.DimStyle.Render("  Q   - Quit") + "\n")
	return b.String()
}

// Show prints the full panel.
func (p *Panel) Show() {
	p.println(p.Header())
	p.println(p.RenderStatus())
	p.println(p.RenderActions())
}

// Execute runs the action bound to key in the project directory.
// An unknown key prints a message and is not an error.
func (p *Panel) Execute(ctx context.Context, key string) error {
	action, ok := FindAction(p.Actions, key)
	if !ok {
		p.println(tui.ErrorStyle.Render(fmt.Sprintf("❌ Unknown action: %s", key)))
		return nil
	}

	p.println(tui.TitleStyle.Render(fmt.Sprintf("🚀 Executing: %s", action.Title)))
	p.println(tui.DimStyle.Render(fmt.Sprintf("   Command: %s", action.Command)) + "\n")

	if err := p.exec.Interactive(ctx, p.dir, "sh", "-c", action.Command); err != nil {
		return fmt.Errorf("command failed: %s: %w", action.Command, err)
	}
	return nil
}

func (p *Panel) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}
