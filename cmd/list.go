package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ops"
	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

var (
	listStatus   string
	listPriority string
	listSortBy   string
	listWatch    bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List your tasks, optionally filtered by status or priority.

By default tasks are sorted by creation time, newest first. Use --sort
to order by due date (earliest first, dateless tasks last) or by
priority (high before medium before low).

Examples:
  taskkeep list                      # All tasks
  taskkeep list --status active      # Only active tasks
  taskkeep list --priority high      # Only high priority
  taskkeep list --sort due_date      # Earliest due date first
  taskkeep list --watch              # Re-render when the file changes`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (active or completed)")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority (high, medium or low)")
	listCmd.Flags().StringVar(&listSortBy, "sort", ops.SortByCreated, "sort key (created_at, due_date or priority)")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "keep running and re-render when the task file changes")
}

// buildListFilter converts raw flag values into a validated list filter.
func buildListFilter(status, priority, sortBy string) (ops.ListFilter, error) {
	filter := ops.ListFilter{SortBy: sortBy}

	if status != "" {
		st, err := models.ParseStatus(status)
		if err != nil {
			return ops.ListFilter{}, err
		}
		filter.Status = &st
	}
	if priority != "" {
		p, err := models.ParsePriority(priority)
		if err != nil {
			return ops.ListFilter{}, err
		}
		filter.Priority = &p
	}
	switch sortBy {
	case "", ops.SortByCreated, ops.SortByDueDate, ops.SortByPriority:
	default:
		return ops.ListFilter{}, fmt.Errorf("invalid sort key %q (expected created_at, due_date or priority)", sortBy)
	}

	return filter, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildListFilter(listStatus, listPriority, listSortBy)
	if err != nil {
		return err
	}

	svc, err := getService()
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}

	if listWatch {
		if isJSON() {
			return fmt.Errorf("--watch cannot be combined with --json")
		}
		return watchTasks(svc, filter)
	}

	tasks, err := svc.ListTasks(filter)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(tasks)
	}

	fmt.Print(ui.RenderTaskList(tasks))
	return nil
}

// watchTasks re-renders the list whenever the task file changes, until
// interrupted.
func watchTasks(svc *ops.Service, filter ops.ListFilter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	taskFile := GetTaskFilePath()
	// Watch the directory: saves replace the file by rename, which would
	// silently detach a watch on the file itself.
	if err := watcher.Add(filepath.Dir(taskFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(taskFile), err)
	}

	render := func() error {
		tasks, err := svc.ListTasks(filter)
		if err != nil {
			return err
		}
		fmt.Print("\x1b[2J\x1b[H")
		fmt.Print(ui.RenderTaskList(tasks))
		fmt.Println(ui.StyleSubtle.Render(" Watching for changes. Press Ctrl+C to stop."))
		return nil
	}
	if err := render(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(taskFile) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := render(); err != nil {
				PrintError("Could not re-read the task file.", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			LogError("watch error", werr)
		case <-sigCh:
			fmt.Println()
			return nil
		}
	}
}
