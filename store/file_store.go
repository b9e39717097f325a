package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/taskkeep/taskkeep/models"
)

const (
	tempSuffix   = ".tmp"
	backupSuffix = ".backup"
	lockSuffix   = ".lock"

	emptyArray = "[]"
)

// FileTaskStore implements the TaskStore interface on a single JSON file:
// a top-level array of task records, rewritten in full on every mutation.
// Writes go through a sibling temp file and an atomic rename, so readers
// always see either the previous or the new content, never a partial
// write. After each successful save a sibling .backup copy is refreshed
// on a best-effort basis.
type FileTaskStore struct {
	fs       afero.Fs
	filePath string
	locking  bool
	flk      *flock.Flock // nil unless locking was requested
}

// Option configures a FileTaskStore during construction.
type Option func(*FileTaskStore)

// WithFilesystem replaces the backing filesystem. Tests use this to inject
// failing filesystems; the default is the host OS.
func WithFilesystem(fsys afero.Fs) Option {
	return func(s *FileTaskStore) { s.fs = fsys }
}

// WithFileLock makes every operation hold an exclusive lock on a sidecar
// <file>.lock for the duration of its read-modify-write cycle, closing the
// lost-update window between concurrent processes. Off by default. The
// sidecar is locked rather than the data file itself, which is replaced by
// a rename on every save.
func WithFileLock() Option {
	return func(s *FileTaskStore) { s.locking = true }
}

// NewFileTaskStore opens the task file at path, creating the parent
// directory when missing and seeding a missing file with an empty array.
// Constructing a store against an existing file never modifies its data.
func NewFileTaskStore(path string, opts ...Option) (*FileTaskStore, error) {
	s := &FileTaskStore{
		fs:       afero.NewOsFs(),
		filePath: path,
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := s.fs.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat data file %s: %w", path, err)
		}
		if err := afero.WriteFile(s.fs, path, []byte(emptyArray), 0o644); err != nil {
			return nil, fmt.Errorf("failed to create data file %s: %w", path, err)
		}
	}

	if s.locking {
		s.flk = flock.New(path + lockSuffix)
	}
	return s, nil
}

// Path returns the location of the backing data file.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// lock acquires the sidecar file lock when locking is enabled. The
// returned release func is a no-op otherwise.
func (s *FileTaskStore) lock() (func(), error) {
	if s.flk == nil {
		return func() {}, nil
	}
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", s.flk.Path(), err)
	}
	log.Debug("Acquired file lock", "path", s.flk.Path())
	return func() { _ = s.flk.Unlock() }, nil
}

// Load reads and decodes the whole data file, preserving file order.
func (s *FileTaskStore) Load() ([]models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.load()
}

// load assumes any requested lock is already held.
func (s *FileTaskStore) load() ([]models.Task, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: top-level %s in %s", ErrSchema, typeErr.Value, s.filePath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, s.filePath, err)
	}
	if records == nil {
		// A lone null decodes into a nil slice without an error.
		return nil, fmt.Errorf("%w: top-level null in %s", ErrSchema, s.filePath)
	}

	tasks := make([]models.Task, 0, len(records))
	for i, rec := range records {
		var t models.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			var missing *models.MissingFieldError
			if errors.As(err, &missing) {
				return nil, fmt.Errorf("task record %d: %w", i, err)
			}
			return nil, fmt.Errorf("%w: task record %d: %v", ErrParse, i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save writes the full task list atomically: the serialized list goes to a
// sibling temp file which is then renamed onto the data file. On any
// failure the temp file is removed and the data file keeps its previous
// content.
func (s *FileTaskStore) Save(tasks []models.Task) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	return s.save(tasks)
}

// save assumes any requested lock is already held.
func (s *FileTaskStore) save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{} // nil would serialize as JSON null
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	tempFilePath := s.filePath + tempSuffix
	defer func() { _ = s.fs.Remove(tempFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempFilePath, err)
	}
	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}

	s.writeBackup(data)
	return nil
}

// writeBackup refreshes the sibling backup copy after a successful save.
// Best effort: a failure is logged as a warning, never returned, so it
// cannot fail the save that preceded it.
func (s *FileTaskStore) writeBackup(data []byte) {
	backupPath := s.filePath + backupSuffix
	if err := afero.WriteFile(s.fs, backupPath, data, 0o644); err != nil {
		log.Warn("Could not refresh task data backup", "path", backupPath, "error", err)
	}
}

// GetAll returns every task, cloned so callers cannot alias stored records.
func (s *FileTaskStore) GetAll() ([]models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

// GetByID returns the task with the given ID.
func (s *FileTaskStore) GetByID(id string) (models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return models.Task{}, err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add appends the task unless its ID is already present.
func (s *FileTaskStore) Add(task models.Task) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == task.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, task.ID)
		}
	}
	return s.save(append(tasks, task))
}

// Update replaces the stored record carrying the same ID as task.
func (s *FileTaskStore) Update(task models.Task) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.ID == task.ID {
			tasks[i] = task
			return s.save(tasks)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, task.ID)
}

// Remove deletes the task with the given ID, preserving the order of the
// remaining records.
func (s *FileTaskStore) Remove(id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.ID == id {
			return s.save(append(tasks[:i], tasks[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
