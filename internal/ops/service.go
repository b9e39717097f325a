// Package ops holds the business logic between the CLI and the task store:
// creation with validation, reference resolution, filtering, sorting and
// bulk clearing. It owns no persistence details beyond the store interface.
package ops

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/taskkeep/taskkeep/models"
	"github.com/taskkeep/taskkeep/store"
)

// Sort keys accepted by ListTasks.
const (
	SortByCreated  = "created_at"
	SortByDueDate  = "due_date"
	SortByPriority = "priority"
)

// Service implements the task operations the CLI exposes. The backing
// store is injected at construction; Service itself keeps no state.
type Service struct {
	store store.TaskStore
}

// NewService returns a Service operating on the given store.
func NewService(st store.TaskStore) *Service {
	return &Service{store: st}
}

// CreateInput carries the caller-supplied fields for a new task. Empty
// strings mean "not provided".
type CreateInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
}

// CreateTask builds a task from in, validates it and persists it. The due
// date, when given, must not lie in the past.
func (s *Service) CreateTask(in CreateInput) (models.Task, error) {
	task := models.NewTask(in.Title)
	if in.Description != "" {
		d := in.Description
		task.Description = &d
	}
	if in.Priority != "" {
		p, err := models.ParsePriority(in.Priority)
		if err != nil {
			return models.Task{}, err
		}
		task.Priority = p
	}
	if in.DueDate != "" {
		due := in.DueDate
		task.DueDate = &due
	}

	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}
	if task.DueDate != nil && models.DateInPast(*task.DueDate) {
		return models.Task{}, errors.New("due date cannot be in the past")
	}

	if err := s.store.Add(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetTask returns the task with the exact given ID.
func (s *Service) GetTask(id string) (models.Task, error) {
	return s.store.GetByID(id)
}

// ResolveTask finds a task by full ID or by a unique ID prefix. An
// ambiguous prefix is an error listing the candidate IDs.
func (s *Service) ResolveTask(ref string) (models.Task, error) {
	if ref == "" {
		return models.Task{}, errors.New("empty task reference")
	}

	task, err := s.store.GetByID(ref)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Task{}, err
	}

	tasks, err := s.store.GetAll()
	if err != nil {
		return models.Task{}, err
	}
	var matches []models.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("%w: %s", store.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return models.Task{}, fmt.Errorf("task reference %q is ambiguous, matches: %s", ref, strings.Join(ids, ", "))
	}
}

// ListFilter narrows and orders the output of ListTasks. Nil filters match
// everything; an empty SortBy sorts by creation time.
type ListFilter struct {
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	SortBy   string
}

// ListTasks returns the tasks matching f, sorted by its sort key.
func (s *Service) ListTasks(f ListFilter) ([]models.Task, error) {
	tasks, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		out = append(out, t)
	}

	if err := sortTasks(out, f.SortBy); err != nil {
		return nil, err
	}
	return out, nil
}

// sortTasks orders tasks in place by the given key. All sorts are stable,
// so equal elements keep their file order.
func sortTasks(tasks []models.Task, key string) error {
	switch key {
	case "", SortByCreated:
		// Newest first.
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case SortByDueDate:
		// Earliest due date first; tasks without one go last.
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return *di < *dj
			}
		})
	case SortByPriority:
		rank := map[models.TaskPriority]int{
			models.PriorityHigh:   0,
			models.PriorityMedium: 1,
			models.PriorityLow:    2,
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return rank[tasks[i].Priority] < rank[tasks[j].Priority]
		})
	default:
		return fmt.Errorf("invalid sort key %q (expected created_at, due_date or priority)", key)
	}
	return nil
}

// CompleteTask marks the referenced task completed. Completing an already
// completed task refreshes its completion timestamp.
func (s *Service) CompleteTask(ref string) (models.Task, error) {
	task, err := s.ResolveTask(ref)
	if err != nil {
		return models.Task{}, err
	}
	task.MarkComplete()
	if err := s.store.Update(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ReopenTask returns the referenced task to the active state.
func (s *Service) ReopenTask(ref string) (models.Task, error) {
	task, err := s.ResolveTask(ref)
	if err != nil {
		return models.Task{}, err
	}
	task.MarkIncomplete()
	if err := s.store.Update(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// EditInput carries field changes for EditTask. Nil pointers leave the
// corresponding field untouched; an empty description removes it.
type EditInput struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string
	ClearDue    bool
}

// EditTask applies the given changes to the referenced task and persists
// it. The not-in-the-past rule applies only to a newly supplied due date,
// so tasks whose dates have since passed stay editable.
func (s *Service) EditTask(ref string, changes EditInput) (models.Task, error) {
	task, err := s.ResolveTask(ref)
	if err != nil {
		return models.Task{}, err
	}

	if changes.Title != nil {
		task.Title = strings.TrimSpace(*changes.Title)
	}
	if changes.Description != nil {
		if *changes.Description == "" {
			task.Description = nil
		} else {
			d := *changes.Description
			task.Description = &d
		}
	}
	if changes.Priority != nil {
		p, err := models.ParsePriority(*changes.Priority)
		if err != nil {
			return models.Task{}, err
		}
		task.Priority = p
	}
	dueChanged := false
	if changes.ClearDue {
		task.DueDate = nil
	} else if changes.DueDate != nil {
		due := *changes.DueDate
		task.DueDate = &due
		dueChanged = true
	}

	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}
	if dueChanged && models.DateInPast(*task.DueDate) {
		return models.Task{}, errors.New("due date cannot be in the past")
	}

	if err := s.store.Update(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes the referenced task and returns it.
func (s *Service) DeleteTask(ref string) (models.Task, error) {
	task, err := s.ResolveTask(ref)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.Remove(task.ID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ClearCompleted removes every completed task, one remove per record, and
// returns the removed tasks in file order.
func (s *Service) ClearCompleted() ([]models.Task, error) {
	tasks, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}

	var completed []models.Task
	for _, t := range tasks {
		if t.IsCompleted() {
			completed = append(completed, t)
		}
	}
	for _, t := range completed {
		if err := s.store.Remove(t.ID); err != nil {
			return nil, err
		}
	}
	return completed, nil
}
