package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ui"
	"github.com/taskkeep/taskkeep/models"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or unique ID prefix. If no ID is provided,
an interactive list is shown. A confirmation prompt is displayed before
deletion unless --force is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := getService()
		if err != nil {
			HandleFatalError("Error: could not open the task store.", err)
		}

		var taskToDelete models.Task

		if len(args) > 0 {
			taskToDelete, err = svc.ResolveTask(args[0])
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: could not find task '%s'.", args[0]), err)
			}
		} else {
			taskToDelete, err = selectTaskInteractive(svc, nil, "Select task to delete")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to delete.")
					return
				}
				if err == ErrNoTerminal {
					HandleFatalError("Error: no terminal attached. Pass a task_id argument instead.", err)
				}
				HandleFatalError("Error: task selection failed.", err)
			}
		}

		if !deleteForce {
			label := fmt.Sprintf("Delete task '%s' (ID: %s)", taskToDelete.Title, ui.ShortID(taskToDelete.ID))
			if err := confirmProceed(label); err != nil {
				if err == ErrNoTerminal {
					HandleFatalError("Error: cannot ask for confirmation without a terminal. Re-run with --force.", err)
				}
				fmt.Println("Deletion cancelled.")
				return
			}
		}

		deleted, err := svc.DeleteTask(taskToDelete.ID)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: could not delete task '%s'.", taskToDelete.Title), err)
		}

		fmt.Printf("Task '%s' (ID: %s) deleted.\n", deleted.Title, ui.ShortID(deleted.ID))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
