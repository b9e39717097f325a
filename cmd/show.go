package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [task_id]",
	Short: "Show details for a specific task",
	Long: `Displays detailed information about a single task, including its
description, priority, status, due date and timestamps.

If a task_id (or unique ID prefix) is provided, it shows that task.
Otherwise, it presents an interactive menu to select one.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := getService()
		if err != nil {
			HandleFatalError("Error: could not open the task store.", err)
		}

		var taskToShow models.Task

		if len(args) > 0 {
			taskToShow, err = svc.ResolveTask(args[0])
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: could not find task '%s'.", args[0]), err)
			}
		} else {
			taskToShow, err = selectTaskInteractive(svc, nil, "Select a task to view its details")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks found.")
					return
				}
				if err == ErrNoTerminal {
					HandleFatalError("Error: no terminal attached. Pass a task_id argument instead.", err)
				}
				HandleFatalError("Error: could not select a task.", err)
			}
		}

		if isJSON() {
			if err := printJSON(taskToShow); err != nil {
				HandleFatalError("Error: could not encode task.", err)
			}
			return
		}

		fmt.Print(ui.RenderTaskDetail(taskToShow))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
