package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/taskkeep/taskkeep/models"
)

func TestStyles(t *testing.T) {
	// Force color profile for testing
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	// Verify ANSI codes are present
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestPriorityStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	high := PriorityStyle(models.PriorityHigh).Render("high")
	low := PriorityStyle(models.PriorityLow).Render("low")
	medium := PriorityStyle(models.PriorityMedium).Render("medium")

	assert.Contains(t, high, "high")
	assert.Contains(t, low, "low")
	assert.Contains(t, medium, "medium")
	assert.NotEqual(t, high, medium, "priorities should render distinctly")
}

func TestStatusStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	done := StatusStyle(models.StatusCompleted).Render("completed")
	active := StatusStyle(models.StatusActive).Render("active")

	assert.Contains(t, done, "completed")
	assert.Contains(t, active, "active")
}
