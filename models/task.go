package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusActive    TaskStatus = "active"
	StatusCompleted TaskStatus = "completed"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Task represents a single tracked task. The JSON field order matches the
// on-disk record layout; description, due date and completion timestamp
// serialize as null when unset, so every record carries the same keys.
type Task struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title       string       `json:"title" yaml:"title" toml:"title" validate:"required,max=200"`
	Description *string      `json:"description" yaml:"description" toml:"description,omitempty" validate:"omitempty,max=1000"`
	Priority    TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=high medium low"`
	DueDate     *string      `json:"due_date" yaml:"due_date" toml:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=active completed"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at" toml:"created_at" validate:"required"`
	CompletedAt *time.Time   `json:"completed_at" yaml:"completed_at" toml:"completed_at,omitempty"`
}

// MissingFieldError reports a task record that lacks a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		var messages []string
		for _, e := range err.(validator.ValidationErrors) {
			messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s'", e.Field(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}

// NewTask returns an active, medium-priority task with a fresh ID and
// creation timestamp. The title is stored with surrounding whitespace
// trimmed.
func NewTask(title string) Task {
	return Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Priority:  PriorityMedium,
		Status:    StatusActive,
		CreatedAt: time.Now(),
	}
}

// ParsePriority converts user input into a TaskPriority, accepting any case.
func ParsePriority(s string) (TaskPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected high, medium or low)", s)
	}
}

// ParseStatus converts user input into a TaskStatus, accepting any case.
func ParseStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q (expected active or completed)", s)
	}
}

// Validate enforces the field rules a task must satisfy before a mutating
// operation accepts it. The persistence layer never calls this; data
// already on disk must still load.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task title cannot be empty")
	}
	return ValidateStruct(t)
}

// DateInPast reports whether a YYYY-MM-DD date falls before today. ISO
// dates compare correctly as strings.
func DateInPast(date string) bool {
	return date < time.Now().Format(DateLayout)
}

// MarkComplete sets the task completed and stamps the completion time.
// Completing an already completed task refreshes the timestamp.
func (t *Task) MarkComplete() {
	now := time.Now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
}

// MarkIncomplete returns the task to the active state and clears the
// completion timestamp.
func (t *Task) MarkIncomplete() {
	t.Status = StatusActive
	t.CompletedAt = nil
}

// IsCompleted reports whether the task has been completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue reports whether an active task's due date has passed.
func (t *Task) IsOverdue() bool {
	return t.Status == StatusActive && t.DueDate != nil && DateInPast(*t.DueDate)
}

// Clone returns a copy that shares no pointers with the original.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		v := *t.Description
		c.Description = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	return c
}

// UnmarshalJSON decodes a task record. The title key must be present;
// records written by older versions may omit id, priority, status or
// created_at, which fall back to generated or default values. Enum casing
// is normalized on the way in.
func (t *Task) UnmarshalJSON(data []byte) error {
	type taskAlias Task
	aux := struct {
		taskAlias
		Title    *string `json:"title"`
		Priority string  `json:"priority"`
		Status   string  `json:"status"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Title == nil {
		return &MissingFieldError{Field: "title"}
	}

	task := Task(aux.taskAlias)
	task.Title = strings.TrimSpace(*aux.Title)

	task.Priority = PriorityMedium
	if aux.Priority != "" {
		p, err := ParsePriority(aux.Priority)
		if err != nil {
			return err
		}
		task.Priority = p
	}

	task.Status = StatusActive
	if aux.Status != "" {
		s, err := ParseStatus(aux.Status)
		if err != nil {
			return err
		}
		task.Status = s
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	*t = task
	return nil
}
