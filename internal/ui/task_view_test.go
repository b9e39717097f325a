package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskkeep/taskkeep/models"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc123def456", "abc123de"},
		{"short", "short"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ShortID(tc.input))
	}
}

func TestRenderTaskList_Empty(t *testing.T) {
	output := RenderTaskList(nil)
	assert.Contains(t, output, "No tasks found.")
}

func TestRenderTaskList(t *testing.T) {
	first := models.NewTask("Buy milk")
	first.Priority = models.PriorityHigh

	second := models.NewTask("Water the plants on the balcony every single day")
	due := "2030-06-01"
	second.DueDate = &due
	second.MarkComplete()

	output := RenderTaskList([]models.Task{first, second})

	assert.Contains(t, output, ShortID(first.ID))
	assert.Contains(t, output, "Buy milk")
	assert.Contains(t, output, "High")
	assert.Contains(t, output, "Completed")
	assert.Contains(t, output, "2030-06-01")
	assert.Contains(t, output, "2 task(s): 1 active, 1 completed")
	// Long titles are shortened for the table
	assert.NotContains(t, output, "every single day")
	assert.Contains(t, output, "...")
}

func TestRenderTaskList_MarksOverdue(t *testing.T) {
	task := models.NewTask("Pay invoice")
	overdue := "2020-01-01"
	task.DueDate = &overdue

	output := RenderTaskList([]models.Task{task})
	assert.Contains(t, output, "2020-01-01 !")
}

func TestRenderTaskDetail(t *testing.T) {
	task := models.NewTask("Ship release")
	desc := "Tag, build and publish"
	task.Description = &desc
	due := "2030-12-31"
	task.DueDate = &due
	task.CreatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	output := RenderTaskDetail(task)

	assert.Contains(t, output, task.ID)
	assert.Contains(t, output, "Ship release")
	assert.Contains(t, output, "Tag, build and publish")
	assert.Contains(t, output, "Medium")
	assert.Contains(t, output, "Active")
	assert.Contains(t, output, "2030-12-31")
	assert.Contains(t, output, "2026-03-14 09:30")
	assert.NotContains(t, output, "Completed:")
}

func TestRenderTaskDetail_CompletedAndOverdue(t *testing.T) {
	task := models.NewTask("Old chore")
	past := "2020-01-01"
	task.DueDate = &past

	output := RenderTaskDetail(task)
	assert.Contains(t, output, "(overdue)")

	task.MarkComplete()
	output = RenderTaskDetail(task)
	// Completed tasks are no longer overdue
	assert.NotContains(t, output, "(overdue)")
	assert.Contains(t, output, "Completed:")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 7, len(lines)) // id, title, priority, status, due, created, completed
}
