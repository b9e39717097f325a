package store

import "github.com/taskkeep/taskkeep/models"

// TaskStore defines the interface for task persistence.
// Every mutating operation runs a full read-modify-write cycle against the
// backing file; no state is cached between calls.
type TaskStore interface {
	// Load reads every task record from the backing file.
	// The order of records in the file is preserved in the returned slice.
	Load() ([]models.Task, error)

	// Save replaces the backing file's content with the given list in a
	// single atomic write. A nil list persists as an empty array.
	Save(tasks []models.Task) error

	// GetAll returns a copy of every task. Mutating the returned records
	// never affects the stored data.
	GetAll() ([]models.Task, error)

	// GetByID returns the task with the given ID.
	// It returns an error matching ErrNotFound when the ID is unknown.
	GetByID(id string) (models.Task, error)

	// Add appends a new task to the store. The task's ID must not already
	// be present; a collision fails with an error matching ErrDuplicate
	// and leaves the file untouched.
	Add(task models.Task) error

	// Update replaces the stored record carrying the same ID as the given
	// task. It returns an error matching ErrNotFound when the ID is
	// unknown.
	Update(task models.Task) error

	// Remove deletes the task with the given ID. It returns an error
	// matching ErrNotFound when the ID is unknown.
	Remove(id string) error
}
