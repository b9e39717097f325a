package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskkeep/taskkeep/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// PriorityStyle returns the display style for a task priority.
func PriorityStyle(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return StyleError
	case models.PriorityLow:
		return StyleSubtle
	default:
		return StyleWarning
	}
}

// StatusStyle returns the display style for a task status.
func StatusStyle(s models.TaskStatus) lipgloss.Style {
	if s == models.StatusCompleted {
		return StyleSuccess
	}
	return StyleText
}
