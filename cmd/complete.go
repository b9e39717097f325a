package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:     "complete [task_id]",
	Aliases: []string{"done", "d"},
	Short:   "Mark a task as completed",
	Long: `Mark a task as completed. If task_id is provided, it marks that task
directly (unique ID prefixes work too). Otherwise, it presents an
interactive list of active tasks to choose from.

Examples:
  # Interactive mode
  taskkeep complete

  # Complete a specific task
  taskkeep complete abc123

  # Using an alias
  taskkeep d abc123`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := getService()
		if err != nil {
			HandleFatalError("Error: could not open the task store.", err)
		}

		var ref string
		if len(args) > 0 {
			ref = args[0]
		} else {
			activeFilter := func(t models.Task) bool {
				return !t.IsCompleted()
			}
			selected, err := selectTaskInteractive(svc, activeFilter, "Select task to mark as completed")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No active tasks available to complete.")
					return
				}
				if err == ErrNoTerminal {
					HandleFatalError("Error: no terminal attached. Pass a task_id argument instead.", err)
				}
				HandleFatalError("Error: could not select a task.", err)
			}
			ref = selected.ID
		}

		task, err := svc.CompleteTask(ref)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: could not complete task '%s'.", ref), err)
		}

		if isJSON() {
			if err := printJSON(task); err != nil {
				HandleFatalError("Error: could not encode task.", err)
			}
			return
		}

		fmt.Printf("%s Task '%s' (ID: %s) marked as completed.\n", ui.StyleSuccess.Render("✓"), task.Title, ui.ShortID(task.ID))
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
