package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/eve/pkg/models"
)

// Style definitions for list output.
var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	statusCompleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusPendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func styleForPriority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priorityHigh
	case models.PriorityMedium:
		return priorityMedium
	case models.PriorityLow:
		return priorityLow
	default:
		return lipgloss.NewStyle()
	}
}

func styleForStatus(s models.Status) lipgloss.Style {
	if s == models.StatusComplete {
		return statusCompleteStyle
	}
	return statusPendingStyle
}

// renderTaskTable formats tasks as an aligned table with one row per task.
func renderTaskTable(tasks []*models.Task) string {
	var b strings.Builder

	header := fmt.Sprintf("%-12s %-8s %-9s %-10s %-3s %s",
		"ID", "STATUS", "PRIORITY", "DUE", "Q", "TITLE")
	b.WriteString(listHeaderStyle.Render(header))
	b.WriteString("\n")

	today := models.Today()
	for _, t := range tasks {
		due := "-"
		dueStyle := lipgloss.NewStyle()
		if t.DueDate != nil {
			due = t.DueDate.String()
			if t.Status == models.StatusPending && t.DueDate.Before(today) {
				dueStyle = overdueStyle
			}
		}
		quadrant := string(t.Quadrant)
		if quadrant == "" {
			quadrant = "-"
		}

		b.WriteString(fmt.Sprintf("%-12s %s %s %s %-3s %s",
			t.ID,
			styleForStatus(t.Status).Render(fmt.Sprintf("%-8s", t.Status)),
			styleForPriority(t.Priority).Render(fmt.Sprintf("%-9s", t.Priority)),
			dueStyle.Render(fmt.Sprintf("%-10s", due)),
			quadrant,
			t.Title,
		))
		if len(t.DependsOn) > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  [deps: %s]", strings.Join(t.DependsOn, ", "))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderTaskDetail formats a single task with all fields.
func renderTaskDetail(t *models.Task) string {
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("%s  %s", t.ID, t.Title)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Status:   %s\n", styleForStatus(t.Status).Render(string(t.Status))))
	b.WriteString(fmt.Sprintf("  Priority: %s\n", styleForPriority(t.Priority).Render(string(t.Priority))))
	if t.Category != "" {
		b.WriteString(fmt.Sprintf("  Category: %s\n", t.Category))
	}
	if t.DueDate != nil {
		b.WriteString(fmt.Sprintf("  Due:      %s\n", t.DueDate))
	}
	if t.Quadrant != models.QuadrantNone {
		b.WriteString(fmt.Sprintf("  Quadrant: %s\n", t.Quadrant))
	}
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("  Notes:    %s\n", t.Description))
	}
	b.WriteString(fmt.Sprintf("  Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04 UTC")))
	if t.CompletedAt != nil {
		b.WriteString(fmt.Sprintf("  Done:     %s\n", t.CompletedAt.Format("2006-01-02 15:04 UTC")))
	}
	if len(t.DependsOn) > 0 {
		b.WriteString(fmt.Sprintf("  Depends:  %s\n", strings.Join(t.DependsOn, ", ")))
	}
	if len(t.Projects) > 0 {
		b.WriteString(fmt.Sprintf("  Projects: %s\n", strings.Join(t.Projects, ", ")))
	}
	if len(t.Contexts) > 0 {
		b.WriteString(fmt.Sprintf("  Contexts: %s\n", strings.Join(t.Contexts, ", ")))
	}
	return b.String()
}
