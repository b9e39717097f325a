package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

// reopenCmd represents the reopen command
var reopenCmd = &cobra.Command{
	Use:     "reopen [task_id]",
	Aliases: []string{"incomplete"},
	Short:   "Return a completed task to the active state",
	Long: `Mark a completed task as active again, clearing its completion
timestamp. If no task_id is provided, an interactive list of completed
tasks is shown.`,
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
			completedFilter := func(t models.Task) bool {
				return t.IsCompleted()
			}
			selected, err := selectTaskInteractive(svc, completedFilter, "Select task to reopen")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No completed tasks available to reopen.")
					return
				}
				if err == ErrNoTerminal {
					HandleFatalError("Error: no terminal attached. Pass a task_id argument instead.", err)
				}
				HandleFatalError("Error: could not select a task.", err)
			}
			ref = selected.ID
		}

		task, err := svc.ReopenTask(ref)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: could not reopen task '%s'.", ref), err)
		}

		if isJSON() {
			if err := printJSON(task); err != nil {
				HandleFatalError("Error: could not encode task.", err)
			}
			return
		}

		fmt.Printf("Task '%s' (ID: %s) marked as active.\n", task.Title, ui.ShortID(task.ID))
	},
}

func init() {
	rootCmd.AddCommand(reopenCmd)
}
