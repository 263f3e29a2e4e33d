package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/eve/pkg/models"
)

// Picker styles.
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	pickerHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// pickerModel is a minimal scrolling list for choosing a task.
type pickerModel struct {
	title    string
	tasks    []*models.Task
	cursor   int
	selected *models.Task
	quit     bool
}

func newPickerModel(title string, tasks []*models.Task) pickerModel {
	return pickerModel{title: title, tasks: tasks}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.tasks[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(" " + m.title + " "))
	b.WriteString("\n\n")

	for i, t := range m.tasks {
		cursor := "  "
		line := fmt.Sprintf("%-12s %s %s",
			t.ID,
			styleForPriority(t.Priority).Render(fmt.Sprintf("%-7s", t.Priority)),
			t.Title)
		if i == m.cursor {
			cursor = pickerCursorStyle.Render("> ")
			line = pickerCursorStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(pickerHelpStyle.Render("up/down: move | enter: select | q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// pickTask shows an interactive list and returns the selected task id.
// Returns an error when the list is empty or the user cancels.
func pickTask(title string, tasks []*models.Task) (string, error) {
	if len(tasks) == 0 {
		return "", fmt.Errorf("no matching tasks")
	}

	p := tea.NewProgram(newPickerModel(title, tasks))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running task picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.selected == nil {
		return "", fmt.Errorf("cancelled")
	}
	return m.selected.ID, nil
}
