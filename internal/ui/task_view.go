package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taskkeep/taskkeep/models"
)

const (
	titleDisplayWidth = 30
	stampLayout       = "2006-01-02 15:04"
)

// titleCaser capitalizes enum values for display. Stored and --json output
// keep the lowercase wire form.
var titleCaser = cases.Title(language.English)

// ShortID returns the ID prefix shown in listings. The prefix is long
// enough to paste back into any command that takes a task reference.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderTaskList returns the table shown by the list command, followed by
// a one-line count summary.
func RenderTaskList(tasks []models.Task) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks found.") + "\n"
	}

	var active, completed int
	for _, t := range tasks {
		if t.IsCompleted() {
			completed++
		} else {
			active++
		}
	}

	table := &Table{
		Headers: []string{"ID", "TITLE", "PRIORITY", "STATUS", "DUE"},
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []Cell{
			Styled(ShortID(t.ID), StyleSubtle),
			Plain(Truncate(t.Title, titleDisplayWidth)),
			Styled(titleCaser.String(string(t.Priority)), PriorityStyle(t.Priority)),
			Styled(titleCaser.String(string(t.Status)), StatusStyle(t.Status)),
			dueCell(t),
		})
	}

	var sb strings.Builder
	sb.WriteString(table.Render())
	sb.WriteString(StyleSubtle.Render(fmt.Sprintf(" %d task(s): %d active, %d completed", len(tasks), active, completed)))
	sb.WriteString("\n")
	return sb.String()
}

func dueCell(t models.Task) Cell {
	if t.DueDate == nil {
		return Styled("-", StyleSubtle)
	}
	if t.IsOverdue() {
		return Styled(*t.DueDate+" !", StyleError)
	}
	return Plain(*t.DueDate)
}

// RenderTaskDetail returns the full single-task view shown by the show
// command and echoed after add.
func RenderTaskDetail(t models.Task) string {
	var sb strings.Builder

	row := func(label, value string, style lipgloss.Style) {
		sb.WriteString(" ")
		sb.WriteString(StyleSubtle.Render(padRight(label+":", 13)))
		sb.WriteString(style.Render(value))
		sb.WriteString("\n")
	}

	row("ID", t.ID, StyleText)
	row("Title", t.Title, StyleTitle)
	if t.Description != nil {
		row("Description", *t.Description, StyleText)
	}
	row("Priority", titleCaser.String(string(t.Priority)), PriorityStyle(t.Priority))
	row("Status", titleCaser.String(string(t.Status)), StatusStyle(t.Status))
	if t.DueDate != nil {
		due := *t.DueDate
		style := StyleText
		if t.IsOverdue() {
			due += " (overdue)"
			style = StyleError
		}
		row("Due date", due, style)
	}
	row("Created", t.CreatedAt.Format(stampLayout), StyleText)
	if t.CompletedAt != nil {
		row("Completed", t.CompletedAt.Format(stampLayout), StyleText)
	}

	return sb.String()
}
