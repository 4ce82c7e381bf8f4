package quickactions

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// PickerModel lets the user choose an action by key or with the arrow keys.
type PickerModel struct {
	header   string
	actions  []Action
	cursor   int
	selected int
	done     bool
}

// NewPicker creates a picker over actions, rendering header above the list.
func NewPicker(header string, actions []Action) PickerModel {
	return PickerModel{
		header:   header,
		actions:  actions,
		selected: -1,
	}
}

// Init initializes the component
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.actions)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.actions) > 0 {
			m.selected = m.cursor
		}
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "q", "Q", "esc":
		m.done = true
		return m, tea.Quit
	default:
		for i, a := range m.actions {
			if strings.EqualFold(a.Key, key) {
				m.selected = i
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the component
func (m PickerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header)
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("⚡ Available Actions:") + "\n")

	for i, a := range m.actions {
		cursor := " "
		labelStyle := lipgloss.NewStyle()
		if m.cursor == i {
			cursor = tui.SelectedStyle.Render("›")
			labelStyle = tui.SelectedStyle
		}

		key := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Bold(true).Render(strings.ToUpper(a.Key))
		b.WriteString(fmt.Sprintf("%s %s - %s  %s\n", cursor, key, labelStyle.Render(a.Title), tui.DimStyle.Render(a.Description)))
	}

	b.WriteString(tui.HelpStyle.Render("Press an action key or ↑↓ + Enter. ESC/Q to close."))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen action, if any
func (m PickerModel) Selected() (Action, bool) {
	if m.selected >= 0 && m.selected < len(m.actions) {
		return m.actions[m.selected], true
	}
	return Action{}, false
}

// IsDone returns whether the picker has closed
func (m PickerModel) IsDone() bool {
	return m.done
}

// Pick runs the picker program and returns the chosen action.
func (p *Panel) Pick(opts ...tea.ProgramOption) (Action, bool, error) {
	header := p.Header() + "\n" + p.RenderStatus()
	final, err := tea.NewProgram(NewPicker(header, p.Actions), opts...).Run()
	if err != nil {
		return Action{}, false, fmt.Errorf("failed to run action picker: %w", err)
	}
	m, ok := final.(PickerModel)
	if !ok {
		return Action{}, false, nil
	}
	action, chosen := m.Selected()
	return action, chosen, nil
}
