package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ops"
	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

var (
	clearForce    bool
	clearNoBackup bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Long: `Remove every completed task from your list. Active tasks are never
touched.

Safety features:
- Shows a preview of the tasks to be removed
- Asks for confirmation (unless --force is used)
- Writes the removed tasks to a snapshot file first (unless --no-backup)

Examples:
  taskkeep clear              # Preview, confirm, snapshot, remove
  taskkeep clear --force      # Skip the confirmation prompt
  taskkeep clear --no-backup  # Skip the snapshot file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := getService()
		if err != nil {
			HandleFatalError("Error: could not open the task store.", err)
		}

		completed := models.StatusCompleted
		tasksToClear, err := svc.ListTasks(ops.ListFilter{Status: &completed})
		if err != nil {
			HandleFatalError("Error: could not list tasks.", err)
		}

		if len(tasksToClear) == 0 {
			fmt.Println("No completed tasks to clear.")
			return
		}

		showClearPreview(tasksToClear)

		if !clearForce {
			label := fmt.Sprintf("Remove %d completed task(s) permanently", len(tasksToClear))
			if err := confirmProceed(label); err != nil {
				if err == ErrNoTerminal {
					HandleFatalError("Error: cannot ask for confirmation without a terminal. Re-run with --force.", err)
				}
				fmt.Println("Clear operation cancelled.")
				return
			}
		}

		if !clearNoBackup {
			if err := createClearSnapshot(tasksToClear); err != nil {
				PrintError("Warning: could not write the snapshot file.", err)
				if !clearForce {
					fmt.Println("Clear operation cancelled for safety.")
					return
				}
			}
		}

		cleared, err := svc.ClearCompleted()
		if err != nil {
			HandleFatalError("Error: could not clear completed tasks.", err)
		}

		fmt.Printf("%s %d completed task(s) cleared.\n", ui.StyleSuccess.Render("✓"), len(cleared))
	},
}

func showClearPreview(tasks []models.Task) {
	fmt.Printf("Tasks to be cleared (%d total):\n", len(tasks))
	for _, task := range tasks {
		fmt.Printf("  • %s (ID: %s)\n", task.Title, ui.ShortID(task.ID))
	}
	fmt.Println()
}

// createClearSnapshot writes the tasks about to be removed to a timestamped
// file under the data directory, so a clear can be undone by hand.
func createClearSnapshot(tasks []models.Task) error {
	cfg := GetConfig()
	backupDir := filepath.Join(cfg.Data.Dir, "backups")

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	backupFile := filepath.Join(backupDir, fmt.Sprintf("clear_%s.json", timestamp))

	snapshot := struct {
		Timestamp time.Time     `json:"timestamp"`
		Operation string        `json:"operation"`
		TaskCount int           `json:"task_count"`
		Tasks     []models.Task `json:"tasks"`
	}{
		Timestamp: time.Now(),
		Operation: "clear",
		TaskCount: len(tasks),
		Tasks:     tasks,
	}

	if err := writeJSONFile(backupFile, snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	fmt.Printf("Snapshot written: %s\n", backupFile)
	return nil
}

// writeJSONFile writes data as JSON to the specified file
func writeJSONFile(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	clearCmd.Flags().BoolVar(&clearNoBackup, "no-backup", false, "skip the snapshot file")
}
